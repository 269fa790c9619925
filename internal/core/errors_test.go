package core

import (
	"errors"
	"math"
	"testing"

	"github.com/inovacc/pokedex/internal/model"
)

func TestInvalidIDError(t *testing.T) {
	err := &InvalidIDError{Value: "abc"}

	expected := `invalid pokemon id: "abc"`
	if err.Error() != expected {
		t.Errorf("InvalidIDError.Error() = %q, want %q", err.Error(), expected)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "25", want: 25},
		{input: " 7 ", want: 7},
		{input: "#151", want: 151},
		{input: "0", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "pikachu", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if tt.wantErr {
				var idErr *InvalidIDError
				if !errors.As(err, &idErr) {
					t.Fatalf("ParseID(%q) error = %v, want *InvalidIDError", tt.input, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseID(%q) unexpected error: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("ParseID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		wantErr  bool
	}{
		{name: "default", from: 1, to: 152},
		{name: "empty", from: 5, to: 5},
		{name: "reversed", from: 10, to: 2, wantErr: true},
		{name: "zero start", from: 0, to: 10, wantErr: true},
		{name: "largest allowed", from: 1, to: 1 + model.MaxSyncRange},
		{name: "too large", from: 1, to: 2 + model.MaxSyncRange, wantErr: true},
		{name: "max int", from: 1, to: math.MaxInt, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%d, %d) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}

			var rangeErr *RangeError
			if err != nil && !errors.As(err, &rangeErr) {
				t.Errorf("ValidateRange(%d, %d) error %T is not a *RangeError", tt.from, tt.to, err)
			}
		})
	}
}
