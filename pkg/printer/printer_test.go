package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlain(&buf)

	p.Header("Linking %s", "/dots")
	p.Info("Loaded %d patterns from %s", 3, ".dotfilerignore")
	p.Success("Linked %s", "bashrc")
	p.Warning("Could not read %s", ".gitignore")
	p.Error("Failed %s", "vimrc")
	p.DryRun("Would link %s", "zshrc")

	assert.Equal(t, "Linking /dots\n"+
		"Loaded 3 patterns from .dotfilerignore\n"+
		"✓ Linked bashrc\n"+
		"! Could not read .gitignore\n"+
		"✗ Failed vimrc\n"+
		"[dry-run] Would link zshrc\n", buf.String())
}

func TestAutoFormatOnBufferIsPlain(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, FormatAuto)
	p.Success("ok")
	assert.Equal(t, "✓ ok\n", buf.String())
}

func TestTerminalPrinterKeepsText(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, FormatTerminal)
	p.Warning("careful")
	assert.Contains(t, buf.String(), "careful")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"terminal", FormatTerminal, false},
		{"plain", FormatText, false},
		{"TEXT", FormatText, false},
		{"html", FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Info("one")
	r.Warning("two %d", 2)
	r.Info("three")

	assert.Equal(t, []string{"one", "three"}, r.ByLevel(LevelInfo))
	assert.Equal(t, []string{"two 2"}, r.ByLevel(LevelWarning))
	assert.Equal(t, "one\ntwo 2\nthree\n", r.String())
	assert.Len(t, r.Lines(), 3)
}
