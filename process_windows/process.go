// Package process_windows binds the process package to the Windows process APIs.
//
// The package-level functions use a shared Enumerator over the native System. On other
// platforms every OS request fails with process.ErrUnsupported.
package process_windows

import (
	"sync"

	"goproc/process"
)

var _ process.System = (*System)(nil)

var (
	defaultOnce       sync.Once
	defaultEnumerator *process.Enumerator
)

// Default returns the shared Enumerator backed by the native System
func Default() *process.Enumerator {
	defaultOnce.Do(func() {
		defaultEnumerator = process.NewEnumerator(NewSystem())
	})
	return defaultEnumerator
}

// New wraps an already open handle; ownership passes to the returned ProcessHandle
func New(h process.Handle, pid process.ProcessID, name string) *process.ProcessHandle {
	return Default().New(h, pid, name)
}

// OpenByID opens pid with PROCESS_ALL_ACCESS and queries its module base name
func OpenByID(pid process.ProcessID) (*process.ProcessHandle, bool) {
	return Default().OpenByID(pid)
}

// OpenByIDWithName opens pid with PROCESS_ALL_ACCESS using a known name
func OpenByIDWithName(pid process.ProcessID, name string) (*process.ProcessHandle, bool) {
	return Default().OpenByIDWithName(pid, name)
}

// FindFirstByName opens the matching process enumerated last by the OS
func FindFirstByName(name string) (*process.ProcessHandle, bool) {
	return Default().FindFirstByName(name)
}

// FindByName opens every process whose name contains filter, most recently enumerated first
func FindByName(filter string) ([]*process.ProcessHandle, error) {
	return Default().FindByName(filter)
}
