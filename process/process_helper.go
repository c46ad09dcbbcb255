package process

// Opener defines operations for opening a single process
type Opener interface {
	// New wraps an already open handle
	New(h Handle, pid ProcessID, name string) *ProcessHandle

	// OpenByID opens pid and queries its name
	OpenByID(pid ProcessID) (*ProcessHandle, bool)

	// OpenByIDWithName opens pid using a name the caller already knows
	OpenByIDWithName(pid ProcessID, name string) (*ProcessHandle, bool)
}

var (
	_ Finder = (*Enumerator)(nil)
	_ Opener = (*Enumerator)(nil)
)
