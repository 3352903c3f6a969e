// Package tui shows a live view of running tasks and their output.
package tui

// MsgTaskStart is sent when a task is handed to the runner.
type MsgTaskStart struct {
	Name string
}

// MsgTaskLog carries a chunk of task output.
type MsgTaskLog struct {
	Name string
	Data []byte
}

// MsgTaskComplete is sent when a task ends. A nil Err means it succeeded.
type MsgTaskComplete struct {
	Name string
	Err  error
}

// MsgDone is sent when the run is over.
type MsgDone struct{}
