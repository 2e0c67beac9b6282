package patcher

import (
	"github.com/apex/log"

	"github.com/vulcandth/gb-save-patcher/pkg/patch"
)

// NewLogSink bridges patch log entries onto an apex/log logger, carrying the
// per-patch source as a structured field. Shells use it to stream entries as
// patching progresses instead of rendering a recorder afterwards.
func NewLogSink(logger log.Interface) patch.Sink {
	return &apexSink{logger: logger}
}

type apexSink struct {
	logger log.Interface
}

func (s *apexSink) Record(e patch.Entry) {
	entry := s.logger.WithField("source", e.Source)
	switch e.Level {
	case patch.Warning:
		entry.Warn(e.Message)
	case patch.Error:
		entry.Error(e.Message)
	default:
		entry.Info(e.Message)
	}
}

// Tee fans entries out to every sink it was built from.
func Tee(sinks ...patch.Sink) patch.Sink {
	return teeSink(sinks)
}

type teeSink []patch.Sink

func (t teeSink) Record(e patch.Entry) {
	for _, s := range t {
		s.Record(e)
	}
}
