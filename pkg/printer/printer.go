package printer

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Level classifies a printed line
type Level string

const (
	LevelHeader  Level = "header"
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelDryRun  Level = "dry-run"
)

// Printer is the user-facing output sink
type Printer interface {
	Header(format string, args ...interface{})
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
	DryRun(format string, args ...interface{})
}

var prefixes = map[Level]string{
	LevelHeader:  "",
	LevelInfo:    "",
	LevelSuccess: "✓ ",
	LevelWarning: "! ",
	LevelError:   "✗ ",
	LevelDryRun:  "[dry-run] ",
}

// writerPrinter writes one line per message, styled or plain
type writerPrinter struct {
	mu     sync.Mutex
	out    io.Writer
	styled bool
	styles styles
}

// New returns a Printer for out in the given format. FormatAuto inspects
// out when it is an *os.File and falls back to plain text otherwise;
// FormatTerminal forces 256-color output even when out is not a TTY.
func New(out io.Writer, format Format) Printer {
	forced := format == FormatTerminal
	if format == FormatAuto {
		format = FormatText
		if f, ok := out.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	p := &writerPrinter{out: out, styled: format == FormatTerminal}
	if p.styled {
		r := lipgloss.NewRenderer(out, termenv.WithColorCache(true))
		if forced {
			r.SetColorProfile(termenv.ANSI256)
		}
		p.styles = newStyles(r)
	}
	return p
}

// NewPlain returns an unstyled Printer writing to out
func NewPlain(out io.Writer) Printer {
	return New(out, FormatText)
}

func (p *writerPrinter) print(level Level, format string, args ...interface{}) {
	line := prefixes[level] + fmt.Sprintf(format, args...)
	if p.styled {
		line = p.style(level).Render(line)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, line)
}

func (p *writerPrinter) style(level Level) lipgloss.Style {
	switch level {
	case LevelHeader:
		return p.styles.header
	case LevelSuccess:
		return p.styles.success
	case LevelWarning:
		return p.styles.warning
	case LevelError:
		return p.styles.err
	case LevelDryRun:
		return p.styles.dryRun
	default:
		return p.styles.info
	}
}

func (p *writerPrinter) Header(format string, args ...interface{}) {
	p.print(LevelHeader, format, args...)
}

func (p *writerPrinter) Info(format string, args ...interface{}) {
	p.print(LevelInfo, format, args...)
}

func (p *writerPrinter) Success(format string, args ...interface{}) {
	p.print(LevelSuccess, format, args...)
}

func (p *writerPrinter) Warning(format string, args ...interface{}) {
	p.print(LevelWarning, format, args...)
}

func (p *writerPrinter) Error(format string, args ...interface{}) {
	p.print(LevelError, format, args...)
}

func (p *writerPrinter) DryRun(format string, args ...interface{}) {
	p.print(LevelDryRun, format, args...)
}

// Discard is a Printer that drops everything
var Discard Printer = NewPlain(io.Discard)
