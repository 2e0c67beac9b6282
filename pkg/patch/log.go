package patch

import "fmt"

// Level is the severity of a log entry.
type Level int

const (
	// Info entries narrate normal progress.
	Info Level = iota
	// Warning entries flag recoverable or unexpected state.
	Warning
	// Error entries describe conditions that stop patching.
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warn"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is a structured log record emitted during patching. Entries never
// influence control flow; they exist for rendering by a shell.
type Entry struct {
	Level   Level
	Source  string
	Message string
}

// Sink collects log entries during patch application.
type Sink interface {
	Record(e Entry)
}

// Infof records a formatted info entry on sink.
func Infof(sink Sink, source, format string, args ...any) {
	sink.Record(Entry{Level: Info, Source: source, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a formatted warning entry on sink.
func Warnf(sink Sink, source, format string, args ...any) {
	sink.Record(Entry{Level: Warning, Source: source, Message: fmt.Sprintf(format, args...)})
}

// Errorf records a formatted error entry on sink.
func Errorf(sink Sink, source, format string, args ...any) {
	sink.Record(Entry{Level: Error, Source: source, Message: fmt.Sprintf(format, args...)})
}

// Recorder is a Sink that keeps entries in memory.
type Recorder struct {
	entries []Entry
}

// Record implements Sink.
func (r *Recorder) Record(e Entry) {
	r.entries = append(r.entries, e)
}

// Entries returns everything recorded so far.
func (r *Recorder) Entries() []Entry {
	return r.entries
}

// Discard is a Sink that drops every entry.
var Discard Sink = discard{}

type discard struct{}

func (discard) Record(Entry) {}
