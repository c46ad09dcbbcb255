// Package process finds running processes by name or pid and owns the OS handles opened for them.
//
// Every open handle belongs to exactly one *ProcessHandle. Close releases it; a handle that is
// dropped without Close is released by a finalizer. The OS itself sits behind the System
// interface so the enumeration and lifetime rules can be exercised without a live process table.
package process

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrUnsupported is returned by the native System on platforms without a process handle API.
	ErrUnsupported = errors.New("process handles are not supported on this platform")

	// ErrNoMoreEntries is returned by Snapshot.Next once the walk has reached the end of the snapshot.
	ErrNoMoreEntries = errors.New("no more snapshot entries")
)

// OsError carries the OS error reported for a failed OS request
type OsError struct {
	Op   string
	Code uint32
	Err  error
}

func (e *OsError) Error() string {
	return fmt.Sprintf("%s failed: %v (code %d)", e.Op, e.Err, e.Code)
}

func (e *OsError) Unwrap() error {
	return e.Err
}

// newOsError wraps err for op, lifting the numeric code out of a syscall.Errno when there is one.
func newOsError(op string, err error) *OsError {
	var osErr *OsError
	if errors.As(err, &osErr) {
		return osErr
	}

	result := &OsError{Op: op, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		result.Code = uint32(errno)
	}
	return result
}
