package linkpipeline

import "github.com/sirupsen/logrus"

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

// LogSink reports finished and failed stages at debug level.
type LogSink struct {
	Logger logrus.FieldLogger
}

func (s LogSink) OnEvent(evt Event) {
	if s.Logger == nil || evt.Status == StatusWorking {
		return
	}
	l := s.Logger.WithField("stage", string(evt.Stage))
	if evt.File != "" {
		l = l.WithField("file", evt.File)
	}
	if evt.Status == StatusError {
		l.WithError(evt.Err).Debug("stage failed")
		return
	}
	l.WithField("elapsed", evt.Elapsed).Debug("stage done")
}

// MultiSink fans every event out to each sink in order.
type MultiSink []ProgressSink

func (m MultiSink) OnEvent(evt Event) {
	for _, s := range m {
		if s != nil {
			s.OnEvent(evt)
		}
	}
}
