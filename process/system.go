package process

// System is the OS boundary used by the Enumerator and by ProcessHandle.Close
type System interface {
	// OpenProcess opens pid with full access rights
	OpenProcess(pid ProcessID) (Handle, error)

	// ProcessName returns the base executable name of an open process
	ProcessName(h Handle) (string, error)

	// CloseHandle releases an open handle
	CloseHandle(h Handle) error

	// Snapshot captures the list of running processes
	Snapshot() (Snapshot, error)
}

// Snapshot is a point-in-time view of the running processes.
// First must be called once before Next; Next returns ErrNoMoreEntries at the end.
type Snapshot interface {
	First(entry *SnapshotEntry) error
	Next(entry *SnapshotEntry) error
	Close() error
}
