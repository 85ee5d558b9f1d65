package buildpipeline

import "time"

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

// FuncSink adapts a function to ProgressSink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

// Emit sends one event; a nil sink drops it.
func Emit(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// EmitQueued marks every file as queued.
func EmitQueued(sink ProgressSink, files []string) {
	for _, file := range files {
		Emit(sink, file, "", StatusQueued, nil, 0)
	}
}
