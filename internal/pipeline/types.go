package pipeline

import "time"

// Stage describes a phase of converting one file.
type Stage string

const (
	// StageOpen acquires the input and output streams.
	StageOpen Stage = "open"
	// StageConvert runs the line loop.
	StageConvert Stage = "convert"
	// StageCommit makes the output visible.
	StageCommit Stage = "commit"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole batch when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}

// Direction selects which way a file is converted.
type Direction uint8

const (
	// Forward turns byte records into values.
	Forward Direction = iota
	// Reverse turns values back into byte records.
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "encode"
	}
	return "convert"
}
