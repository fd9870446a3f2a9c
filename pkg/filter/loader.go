package filter

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotfiler/pkg/filesystem"
	"github.com/arthur-debert/dotfiler/pkg/logging"
	"github.com/arthur-debert/dotfiler/pkg/printer"
)

// Default ignore file names
const (
	DefaultIgnoreFile = ".dotfilerignore"
	GitignoreFile     = ".gitignore"
)

// ParseIgnoreContent classifies every meaningful line of an ignore file.
// Lines are trimmed; blank lines and lines starting with '#' are skipped.
func ParseIgnoreContent(content string) []Pattern {
	var patterns []Pattern
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, Classify(line))
	}
	return patterns
}

// LoadIgnoreFile reads sourceDir/name and returns its patterns in file order.
// A missing file yields no patterns. An unreadable one is reported to out as
// a warning and also yields no patterns; loading never fails.
func LoadIgnoreFile(fsys filesystem.FS, out printer.Printer, sourceDir, name string) []Pattern {
	path := filepath.Join(sourceDir, name)
	logger := logging.GetLogger("filter.loader").With().Str("path", path).Logger()

	if _, err := fsys.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Msg("No ignore file")
			return nil
		}
		logger.Warn().Err(err).Msg("Cannot stat ignore file")
		out.Warning("Could not read %s: %v", name, err)
		return nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot read ignore file")
		out.Warning("Could not read %s: %v", name, err)
		return nil
	}

	patterns := ParseIgnoreContent(string(data))
	logger.Debug().Int("patterns", len(patterns)).Msg("Loaded ignore file")
	out.Info("Loaded %d ignore patterns from %s", len(patterns), name)
	return patterns
}
