package process

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// ProcessHandle owns one open OS handle to a running process.
//
// The handle is released by Close, or by a finalizer if the ProcessHandle becomes unreachable
// while still open. Once released the handle is NullHandle and further releases are no-ops.
type ProcessHandle struct {
	pid    ProcessID
	name   string
	handle Handle
	sys    System
	log    *logger.Logger
	mu     sync.Mutex
}

func newProcessHandle(sys System, h Handle, pid ProcessID, name string) *ProcessHandle {
	p := &ProcessHandle{
		pid:    pid,
		name:   name,
		handle: h,
		sys:    sys,
		log:    logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}

	if h != NullHandle {
		runtime.SetFinalizer(p, (*ProcessHandle).release)
	}

	return p
}

// PID returns the process ID
func (p *ProcessHandle) PID() ProcessID {
	if p == nil {
		return 0
	}
	return p.pid
}

// Name returns the executable name captured when the handle was opened, possibly empty
func (p *ProcessHandle) Name() string {
	if p == nil {
		return ""
	}
	return p.name
}

// Handle returns the raw OS handle, or NullHandle after release.
// The value must not be used once the ProcessHandle is closed.
//
// If the ProcessHandle becomes unreachable its finalizer may close the OS handle while the
// raw value is still in use. Callers passing the value to the OS should keep p reachable
// until they are done, for example with runtime.KeepAlive(p), as with os.File.Fd.
func (p *ProcessHandle) Handle() Handle {
	if p == nil {
		return NullHandle
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle
}

// IsClosed reports whether the OS handle has been released
func (p *ProcessHandle) IsClosed() bool {
	return p.Handle() == NullHandle
}

func (p *ProcessHandle) String() string {
	if p == nil {
		return "process(nil)"
	}
	return fmt.Sprintf("process(%d, %q)", p.pid, p.name)
}

// Close releases the OS handle. Closing an already closed handle succeeds without an OS call.
// If the OS refuses, the handle is kept so the call can be retried.
func (p *ProcessHandle) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.handle == NullHandle {
		return nil
	}

	if err := p.sys.CloseHandle(p.handle); err != nil {
		p.log.Warn("CloseHandle failed: ", err)
		return newOsError("CloseHandle", err)
	}

	p.handle = NullHandle
	runtime.SetFinalizer(p, nil)
	p.log.Debugln("Process closed")

	return nil
}

// release is the finalizer; there is nobody to report a failure to.
func (p *ProcessHandle) release() {
	_ = p.Close()
}

// CloseAll closes every handle in list and returns the joined errors
func CloseAll(list []*ProcessHandle) error {
	var errs []error
	for _, p := range list {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
