package process

// Finder defines operations for discovering processes by name
type Finder interface {
	// FindByName opens every process whose name contains filter, most recently enumerated first
	FindByName(filter string) ([]*ProcessHandle, error)

	// FindFirstByName opens the front element of FindByName(name)
	FindFirstByName(name string) (*ProcessHandle, bool)

	// Processes lists snapshot rows whose name contains filter without opening them
	Processes(filter string) ([]ProcessInfo, error)
}
