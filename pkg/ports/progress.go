package ports

// Progress reports progress of long-running work such as decoding.
type Progress interface {
	// Start begins a new task. A total <= 0 means the length is unknown.
	Start(total int, description string)

	// Add advances the task by n units.
	Add(n int)

	// Finish completes the task.
	Finish()
}
