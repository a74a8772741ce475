package model

// TaskStatus represents the status of a download task
type TaskStatus string

const (
	// TaskStatusPending means the task was created but the engine has not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means the engine is resolving the video
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusDownloading means bytes are being received
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusStopping means cancellation was requested
	TaskStatusStopping TaskStatus = "Stopping"

	// TaskStatusStopped means the task was cancelled by the user
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means the file was written successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusDownloading || ts == TaskStatusStopping
}

// IsFinished returns true if the task is in a terminal state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}
