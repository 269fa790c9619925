package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inovacc/pokedex/internal/model"
)

// InvalidIDError indicates an argument that is not a positive dex number
type InvalidIDError struct {
	Value string
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid pokemon id: %q", e.Value)
}

// RangeError indicates a half-open ID range that cannot be swept
type RangeError struct {
	From   int
	To     int
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid id range [%d, %d): %s", e.From, e.To, e.Reason)
}

// ParseID converts a command argument to a dex number.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id <= 0 {
		return 0, &InvalidIDError{Value: s}
	}

	return id, nil
}

// ValidateRange checks a half-open sync range. An empty range is allowed.
func ValidateRange(from, to int) error {
	switch {
	case from <= 0:
		return &RangeError{From: from, To: to, Reason: "from must be positive"}
	case to < from:
		return &RangeError{From: from, To: to, Reason: "to must not be below from"}
	case to-from > model.MaxSyncRange:
		return &RangeError{From: from, To: to, Reason: fmt.Sprintf("spans more than %d ids", model.MaxSyncRange)}
	}

	return nil
}
