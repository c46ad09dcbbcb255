// Package process_details collects descriptive information about a running process for display.
// Every field is best effort: a process owned by another user typically hides its executable
// path and user name, and those fields are left empty.
package process_details

import (
	"fmt"
	"math"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Details describes a running process
type Details struct {
	PID       uint32
	ParentPID uint32
	Exe       string
	User      string
	Started   time.Time
}

// Lookup returns the details of pid. It fails only when the process does not exist.
func Lookup(pid uint32) (Details, error) {
	if pid > math.MaxInt32 {
		return Details{}, fmt.Errorf("pid %d out of range", pid)
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return Details{}, fmt.Errorf("lookup process %d: %w", pid, err)
	}

	d := Details{PID: pid}

	if ppid, err := p.Ppid(); err == nil && ppid >= 0 {
		d.ParentPID = uint32(ppid)
	}
	if exe, err := p.Exe(); err == nil {
		d.Exe = exe
	}
	if user, err := p.Username(); err == nil {
		d.User = user
	}
	if ms, err := p.CreateTime(); err == nil && ms > 0 {
		d.Started = time.UnixMilli(ms)
	}

	return d, nil
}

// Age returns how long the process has been running, or zero if the start time is unknown
func (d Details) Age(now time.Time) time.Duration {
	if d.Started.IsZero() || now.Before(d.Started) {
		return 0
	}
	return now.Sub(d.Started)
}
