package process

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	table := List()
	assert.NotNil(t, table)

	// The test binary itself is a Go process.
	assert.NotEmpty(t, table.procList)
}

func TestProcessExists(t *testing.T) {
	table := &Table{procList: []Process{
		{PID: 100, Exec: "pokedex", Path: "/usr/local/bin/pokedex"},
		{PID: 200, Exec: "other", Path: "/opt/Other"},
	}}

	assert.True(t, table.ProcessExists(100, "pokedex"))
	assert.True(t, table.ProcessExists(200, "OTHER"))
	assert.False(t, table.ProcessExists(200, "pokedex"))
	assert.False(t, table.ProcessExists(300, "pokedex"))
}

func fakeList(procs ...Process) func() *Table {
	return func() *Table {
		return &Table{procList: procs}
	}
}

func TestAcquire_Fresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "watch.pid")

	lock, err := acquire(path, "pokedex", fakeList())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

	require.NoError(t, lock.Release())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestAcquire_HeldByRunningInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.pid")
	require.NoError(t, os.WriteFile(path, []byte("4242"), 0o600))

	_, err := acquire(path, "pokedex", fakeList(Process{PID: 4242, Exec: "pokedex"}))

	var running *AlreadyRunningError
	require.ErrorAs(t, err, &running)
	assert.Equal(t, 4242, running.PID)
}

func TestAcquire_TakesOverStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		procs   []Process
	}{
		{name: "process gone", content: "4242"},
		{name: "pid reused by another program", content: "4242", procs: []Process{{PID: 4242, Exec: "vim"}}},
		{name: "corrupt file", content: "not a pid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "watch.pid")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			lock, err := acquire(path, "pokedex", fakeList(tt.procs...))
			require.NoError(t, err)
			require.NotNil(t, lock)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))
		})
	}
}

func TestRelease_KeepsForeignLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.pid")
	lock := &Lock{path: path}

	require.NoError(t, os.WriteFile(path, []byte("4242"), 0o600))
	require.NoError(t, lock.Release())

	_, err := os.Stat(path)
	assert.NoError(t, err, "a lock taken over by another process must be left alone")
}
