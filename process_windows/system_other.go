//go:build !windows

package process_windows

import "goproc/process"

// System reports process.ErrUnsupported for every request outside Windows
type System struct{}

// NewSystem creates the native System
func NewSystem() *System {
	return &System{}
}

func (s *System) OpenProcess(pid process.ProcessID) (process.Handle, error) {
	return process.NullHandle, process.ErrUnsupported
}

func (s *System) ProcessName(h process.Handle) (string, error) {
	return "", process.ErrUnsupported
}

func (s *System) CloseHandle(h process.Handle) error {
	return process.ErrUnsupported
}

func (s *System) Snapshot() (process.Snapshot, error) {
	return nil, process.ErrUnsupported
}
