//go:build windows

package process_windows

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"

	"goproc/process"
)

// System implements process.System with the kernel32/psapi process functions
type System struct{}

// NewSystem creates the native System
func NewSystem() *System {
	return &System{}
}

func (s *System) OpenProcess(pid process.ProcessID) (process.Handle, error) {
	h, err := windows.OpenProcess(windows.PROCESS_ALL_ACCESS, false, uint32(pid))
	if err != nil {
		return process.NullHandle, err
	}
	return process.Handle(h), nil
}

func (s *System) ProcessName(h process.Handle) (string, error) {
	var buf [windows.MAX_PATH + 1]uint16
	if err := windows.GetModuleBaseName(windows.Handle(h), 0, &buf[0], uint32(len(buf))); err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf[:]), nil
}

func (s *System) CloseHandle(h process.Handle) error {
	return windows.CloseHandle(windows.Handle(h))
}

func (s *System) Snapshot() (process.Snapshot, error) {
	h, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, err
	}
	return &snapshot{handle: h}, nil
}

type snapshot struct {
	handle windows.Handle
	entry  windows.ProcessEntry32
}

func (s *snapshot) First(entry *process.SnapshotEntry) error {
	return s.step(windows.Process32First, entry)
}

func (s *snapshot) Next(entry *process.SnapshotEntry) error {
	return s.step(windows.Process32Next, entry)
}

func (s *snapshot) step(fn func(windows.Handle, *windows.ProcessEntry32) error, entry *process.SnapshotEntry) error {
	s.entry = windows.ProcessEntry32{}
	s.entry.Size = uint32(unsafe.Sizeof(s.entry))

	if err := fn(s.handle, &s.entry); err != nil {
		if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
			return process.ErrNoMoreEntries
		}
		return err
	}

	entry.ProcessID = process.ProcessID(s.entry.ProcessID)
	entry.ParentProcessID = process.ProcessID(s.entry.ParentProcessID)
	entry.ExeFile = s.entry.ExeFile
	return nil
}

func (s *snapshot) Close() error {
	if s.handle == 0 {
		return nil
	}
	if err := windows.CloseHandle(s.handle); err != nil {
		return err
	}
	s.handle = 0
	return nil
}
