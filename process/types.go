package process

// ProcessID represents a unique identifier for a process
type ProcessID uint32

// Handle is an opaque OS reference to an open process
type Handle uintptr

// NullHandle is the value a ProcessHandle holds once its OS handle has been released
const NullHandle Handle = 0

// MaxPath is the size, in UTF-16 code units, of the executable name buffer in a snapshot entry
const MaxPath = 260

// ProcessInfo is one row of a process snapshot, without an open handle
type ProcessInfo struct {
	PID       ProcessID // Process ID
	ParentPID ProcessID // Parent Process ID
	Name      string    // Executable base name as reported by the snapshot
}

// SnapshotEntry is the raw row filled in by Snapshot.First and Snapshot.Next.
// It is only meaningful for the duration of a walk.
type SnapshotEntry struct {
	ProcessID       ProcessID
	ParentProcessID ProcessID
	ExeFile         [MaxPath]uint16
}

func (e *SnapshotEntry) reset() {
	*e = SnapshotEntry{}
}
