package printer

import (
	"fmt"
	"strings"
	"sync"
)

// Line is one message captured by a Recorder
type Line struct {
	Level Level
	Text  string
}

// Recorder captures printed lines in memory
type Recorder struct {
	mu    sync.Mutex
	lines []Line
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(level Level, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, Line{Level: level, Text: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Header(format string, args ...interface{}) {
	r.record(LevelHeader, format, args...)
}

func (r *Recorder) Info(format string, args ...interface{}) {
	r.record(LevelInfo, format, args...)
}

func (r *Recorder) Success(format string, args ...interface{}) {
	r.record(LevelSuccess, format, args...)
}

func (r *Recorder) Warning(format string, args ...interface{}) {
	r.record(LevelWarning, format, args...)
}

func (r *Recorder) Error(format string, args ...interface{}) {
	r.record(LevelError, format, args...)
}

func (r *Recorder) DryRun(format string, args ...interface{}) {
	r.record(LevelDryRun, format, args...)
}

// Lines returns a copy of all captured lines
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Line, len(r.lines))
	copy(out, r.lines)
	return out
}

// ByLevel returns the text of captured lines at level
func (r *Recorder) ByLevel(level Level) []string {
	var out []string
	for _, l := range r.Lines() {
		if l.Level == level {
			out = append(out, l.Text)
		}
	}
	return out
}

// String joins all captured text, one line each
func (r *Recorder) String() string {
	var b strings.Builder
	for _, l := range r.Lines() {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

var _ Printer = (*Recorder)(nil)
