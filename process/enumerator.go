package process

import (
	"errors"
	"slices"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// Enumerator opens process handles through a System
type Enumerator struct {
	sys System
	log *logger.Logger
}

// NewEnumerator creates an Enumerator backed by sys
func NewEnumerator(sys System) *Enumerator {
	return &Enumerator{
		sys: sys,
		log: logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "enumerator")),
	}
}

// System returns the OS boundary the Enumerator was created with
func (e *Enumerator) System() System {
	return e.sys
}

// New wraps an already open handle. No validation is performed; the caller hands over
// ownership of h to the returned ProcessHandle.
func (e *Enumerator) New(h Handle, pid ProcessID, name string) *ProcessHandle {
	return newProcessHandle(e.sys, h, pid, name)
}

// OpenByID opens pid with full access and queries its executable name.
// It returns false if the process does not exist, has exited, or cannot be opened.
func (e *Enumerator) OpenByID(pid ProcessID) (*ProcessHandle, bool) {
	h, ok := e.open(pid)
	if !ok {
		return nil, false
	}

	name, err := e.sys.ProcessName(h)
	if err != nil {
		e.log.Debugln("Failed to query name of process", pid, err)
		name = ""
	}

	return e.New(h, pid, name), true
}

// OpenByIDWithName opens pid with full access, using name instead of querying the OS for it
func (e *Enumerator) OpenByIDWithName(pid ProcessID, name string) (*ProcessHandle, bool) {
	h, ok := e.open(pid)
	if !ok {
		return nil, false
	}
	return e.New(h, pid, name), true
}

func (e *Enumerator) open(pid ProcessID) (Handle, bool) {
	h, err := e.sys.OpenProcess(pid)
	if err != nil {
		e.log.Debugln("OpenProcess failed for pid", pid, newOsError("OpenProcess", err))
		return NullHandle, false
	}
	if h == NullHandle {
		return NullHandle, false
	}
	return h, true
}

// FindByName opens every running process whose name contains filter (case-sensitive).
// An empty filter matches every process. Processes that cannot be opened are left out.
//
// The result is in reverse snapshot order. The first process of the snapshot is never
// considered: the walk consumes it as the primer entry.
func (e *Enumerator) FindByName(filter string) ([]*ProcessHandle, error) {
	var result []*ProcessHandle

	err := e.walk(filter, func(info ProcessInfo) {
		if p, ok := e.OpenByIDWithName(info.PID, info.Name); ok {
			result = append(result, p)
		}
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(result)
	e.log.Debugln("Found", len(result), "processes matching", filter)
	return result, nil
}

// FindFirstByName opens a fresh handle to the front element of FindByName(name), which is
// the matching process enumerated last by the OS. The handles opened by the search itself are
// closed before returning.
func (e *Enumerator) FindFirstByName(name string) (*ProcessHandle, bool) {
	matches, err := e.FindByName(name)
	if err != nil {
		e.log.Debugln("FindByName failed:", err)
		return nil, false
	}
	if len(matches) == 0 {
		return nil, false
	}

	p, ok := e.OpenByID(matches[0].PID())

	if err := CloseAll(matches); err != nil {
		e.log.Debugln("Failed to close search handles:", err)
	}

	return p, ok
}

// Processes lists the snapshot rows FindByName would try to open, in the same order,
// without opening any handle.
func (e *Enumerator) Processes(filter string) ([]ProcessInfo, error) {
	var result []ProcessInfo

	err := e.walk(filter, func(info ProcessInfo) {
		result = append(result, info)
	})
	if err != nil {
		return nil, err
	}

	slices.Reverse(result)
	return result, nil
}

// walk takes a snapshot and calls visit for every entry after the primer whose name
// passes filter. Only a failure to take the snapshot is returned; any other failure ends
// the walk early.
func (e *Enumerator) walk(filter string, visit func(ProcessInfo)) error {
	snapshot, err := e.sys.Snapshot()
	if err != nil {
		return newOsError("CreateToolhelp32Snapshot", err)
	}
	defer func() {
		if err := snapshot.Close(); err != nil {
			e.log.Debugln("Failed to close snapshot:", err)
		}
	}()

	var entry SnapshotEntry
	_ = snapshot.First(&entry)
	entry.reset()

	for {
		if err := snapshot.Next(&entry); err != nil {
			if !errors.Is(err, ErrNoMoreEntries) {
				e.log.Debugln("Snapshot walk stopped early:", err)
			}
			return nil
		}

		info := ProcessInfo{
			PID:       entry.ProcessID,
			ParentPID: entry.ParentProcessID,
			Name:      DecodeExeName(entry.ExeFile[:]),
		}
		entry.reset()

		if !matchName(info.Name, filter) {
			continue
		}
		visit(info)
	}
}
