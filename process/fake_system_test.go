package process

import (
	"errors"
	"sync"
	"syscall"
	"testing"
	"unicode/utf16"
)

var errAccessDenied = syscall.Errno(5)

type fakeProcess struct {
	pid    ProcessID
	parent ProcessID
	name   string
	denied bool
}

// fakeSystem serves a fixed process table. procs is in snapshot order, so procs[0] is the
// entry consumed by Snapshot.First.
type fakeSystem struct {
	mu sync.Mutex

	procs []fakeProcess

	snapshotErr   error
	nextErrAfter  int // Next fails with errNextFailed once this many entries were returned, when > 0
	nameErr       error
	closeFailures int // CloseHandle fails this many times before succeeding
	onOpen        func(pid ProcessID) error

	nextHandle Handle
	open       map[Handle]ProcessID

	openCalls  int
	nameCalls  int
	closeCalls int
	snapshots  []*fakeSnapshot
}

var errNextFailed = errors.New("Process32Next: invalid handle")

func newFakeSystem(procs ...fakeProcess) *fakeSystem {
	return &fakeSystem{
		procs:      procs,
		nextHandle: 0x100,
		open:       make(map[Handle]ProcessID),
	}
}

func (f *fakeSystem) OpenProcess(pid ProcessID) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.openCalls++
	if f.onOpen != nil {
		if err := f.onOpen(pid); err != nil {
			return NullHandle, err
		}
	}

	for _, p := range f.procs {
		if p.pid != pid {
			continue
		}
		if p.denied {
			return NullHandle, errAccessDenied
		}
		h := f.nextHandle
		f.nextHandle += 4
		f.open[h] = pid
		return h, nil
	}

	return NullHandle, syscall.Errno(87)
}

func (f *fakeSystem) ProcessName(h Handle) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nameCalls++
	if f.nameErr != nil {
		return "", f.nameErr
	}

	pid, ok := f.open[h]
	if !ok {
		return "", syscall.Errno(6)
	}
	for _, p := range f.procs {
		if p.pid == pid {
			return p.name, nil
		}
	}
	return "", syscall.Errno(6)
}

func (f *fakeSystem) CloseHandle(h Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closeCalls++
	if f.closeFailures > 0 {
		f.closeFailures--
		return errAccessDenied
	}
	if _, ok := f.open[h]; !ok {
		return syscall.Errno(6)
	}
	delete(f.open, h)
	return nil
}

func (f *fakeSystem) Snapshot() (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}

	s := &fakeSnapshot{
		procs:     append([]fakeProcess(nil), f.procs...),
		failAfter: f.nextErrAfter,
	}
	f.snapshots = append(f.snapshots, s)
	return s, nil
}

func (f *fakeSystem) openHandles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.open)
}

func (f *fakeSystem) calls() (open, name, close int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.openCalls, f.nameCalls, f.closeCalls
}

type fakeSnapshot struct {
	procs     []fakeProcess
	cursor    int
	returned  int
	failAfter int
	primed    bool
	closed    int
}

func (s *fakeSnapshot) First(entry *SnapshotEntry) error {
	s.primed = true
	s.cursor = 0
	if len(s.procs) == 0 {
		return ErrNoMoreEntries
	}
	fillEntry(entry, s.procs[0])
	return nil
}

func (s *fakeSnapshot) Next(entry *SnapshotEntry) error {
	if s.failAfter > 0 && s.returned >= s.failAfter {
		return errNextFailed
	}
	s.cursor++
	if s.cursor >= len(s.procs) {
		return ErrNoMoreEntries
	}
	fillEntry(entry, s.procs[s.cursor])
	s.returned++
	return nil
}

func (s *fakeSnapshot) Close() error {
	s.closed++
	return nil
}

func fillEntry(entry *SnapshotEntry, p fakeProcess) {
	entry.ProcessID = p.pid
	entry.ParentProcessID = p.parent
	copy(entry.ExeFile[:MaxPath-1], utf16.Encode([]rune(p.name)))
}

// closeOnCleanup keeps handles reachable for the whole test and closes them at the end.
func closeOnCleanup(t *testing.T, list ...*ProcessHandle) {
	t.Helper()
	t.Cleanup(func() { _ = CloseAll(list) })
}

func pids(list []*ProcessHandle) []ProcessID {
	result := make([]ProcessID, 0, len(list))
	for _, p := range list {
		result = append(result, p.PID())
	}
	return result
}
