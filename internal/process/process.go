package process

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/gops/goprocess"
)

// Process is a running Go process.
type Process struct {
	PID  int
	Exec string
	Path string
}

// Table is a point-in-time listing of Go processes.
type Table struct {
	procList []Process
}

// List snapshots the Go processes currently running on this host.
func List() *Table {
	t := &Table{}

	for _, proc := range goprocess.FindAll() {
		t.procList = append(t.procList, Process{
			PID:  proc.PID,
			Exec: proc.Exec,
			Path: proc.Path,
		})
	}

	return t
}

// ProcessExists reports whether pid is running and its executable name or
// path contains name.
func (t *Table) ProcessExists(pid int, name string) bool {
	name = strings.ToLower(name)

	for _, proc := range t.procList {
		if proc.PID == pid {
			return strings.Contains(strings.ToLower(proc.Exec), name) || strings.Contains(strings.ToLower(proc.Path), name)
		}
	}

	return false
}

// AlreadyRunningError indicates another instance holds the lock
type AlreadyRunningError struct {
	PID  int
	Path string
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("already running as pid %d (lock file %s)", e.PID, e.Path)
}

// Lock is a PID file that keeps a second instance of a long-running command
// from starting.
type Lock struct {
	path string
}

// Acquire writes the current PID to path. A PID file left by a process that
// is gone, or that is not a Go process named name, is taken over.
func Acquire(path, name string) (*Lock, error) {
	return acquire(path, name, List)
}

func acquire(path, name string, list func() *Table) (*Lock, error) {
	if pid, err := readPID(path); err == nil && pid != os.Getpid() {
		if list().ProcessExists(pid, name) {
			return nil, &AlreadyRunningError{PID: pid, Path: path}
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write lock file: %w", err)
	}

	return &Lock{path: path}, nil
}

// Release removes the PID file if it still holds the current PID.
func (l *Lock) Release() error {
	pid, err := readPID(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	if pid != os.Getpid() {
		return nil
	}

	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	return nil
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		// A corrupt lock file is treated as stale.
		return 0, nil
	}

	return pid, nil
}
