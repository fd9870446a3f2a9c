package filter

import (
	"github.com/arthur-debert/dotfiler/pkg/filesystem"
	"github.com/arthur-debert/dotfiler/pkg/logging"
	"github.com/arthur-debert/dotfiler/pkg/printer"
	"github.com/rs/zerolog"
)

// Options configures a Filter. The Filter does not normalize them; callers
// start from DefaultOptions or a normalized configuration.
type Options struct {
	Include []string
	Exclude []string
	// IgnoreFile is loaded from the source directory unless empty
	IgnoreFile string
	// UseGitignore also loads .gitignore, after IgnoreFile
	UseGitignore bool
}

// DefaultOptions returns the defaults: include everything, exclude names
// starting with a dot or an uppercase letter, read .dotfilerignore.
func DefaultOptions() Options {
	return Options{
		Include:    []string{"*"},
		Exclude:    []string{SentinelDotPrefix, SentinelUpperPrefix},
		IgnoreFile: DefaultIgnoreFile,
	}
}

// Filter decides which source entries are processed. It is immutable after
// New and safe for concurrent use.
type Filter struct {
	include   []string
	exclude   []string
	ignore    []Pattern
	sourceDir string
	logger    zerolog.Logger
}

// New builds a Filter for sourceDir, loading ignore files through fsys and
// reporting them to out.
func New(opts Options, sourceDir string, fsys filesystem.FS, out printer.Printer) *Filter {
	var ignore []Pattern
	if opts.IgnoreFile != "" {
		ignore = append(ignore, LoadIgnoreFile(fsys, out, sourceDir, opts.IgnoreFile)...)
	}
	if opts.UseGitignore {
		ignore = append(ignore, LoadIgnoreFile(fsys, out, sourceDir, GitignoreFile)...)
	}
	return NewWithPatterns(opts, sourceDir, ignore)
}

// NewWithPatterns builds a Filter from already parsed ignore patterns.
func NewWithPatterns(opts Options, sourceDir string, ignore []Pattern) *Filter {
	f := &Filter{
		include:   append([]string(nil), opts.Include...),
		exclude:   append([]string(nil), opts.Exclude...),
		ignore:    append([]Pattern(nil), ignore...),
		sourceDir: sourceDir,
		logger:    logging.GetLogger("filter"),
	}

	f.logger.Debug().
		Str("sourceDir", sourceDir).
		Strs("include", f.include).
		Strs("exclude", f.exclude).
		Int("ignorePatterns", len(f.ignore)).
		Msg("Filter created")

	return f
}

// SourceDir returns the directory ignore files were loaded from
func (f *Filter) SourceDir() string { return f.sourceDir }

// IgnorePatterns returns a copy of the loaded ignore patterns
func (f *Filter) IgnorePatterns() []Pattern {
	return append([]Pattern(nil), f.ignore...)
}

// ShouldProcess reports whether filename should be linked
func (f *Filter) ShouldProcess(filename string) bool {
	return f.Explain(filename).Process
}

// Stage names the rule that settled a Decision
type Stage string

const (
	StageEmpty       Stage = "empty"
	StageIgnored     Stage = "ignored"
	StageNotIncluded Stage = "not-included"
	StageExcluded    Stage = "excluded"
	StageAccepted    Stage = "accepted"
)

// Decision explains the outcome for one name
type Decision struct {
	Process bool
	Stage   Stage
	// Pattern is the rule that decided, empty when none applies
	Pattern string
	// Rescued is set when a negated ignore pattern cancelled an ignore match
	Rescued bool
}

// Explain evaluates filename and reports which rule decided. Ignore files
// are consulted first and short-circuit include and exclude checks.
func (f *Filter) Explain(filename string) Decision {
	if filename == "" {
		return Decision{Stage: StageEmpty}
	}

	ignoredBy, rescuedBy := f.checkIgnore(filename)
	if ignoredBy != nil && rescuedBy == nil {
		return f.decided(filename, Decision{Stage: StageIgnored, Pattern: ignoredBy.String()})
	}
	rescued := rescuedBy != nil

	if !isIncludeAll(f.include) {
		matched := ""
		for _, p := range f.include {
			if Matches(p, filename) {
				matched = p
				break
			}
		}
		if matched == "" {
			return f.decided(filename, Decision{Stage: StageNotIncluded, Rescued: rescued})
		}
	}

	for _, p := range f.exclude {
		if Matches(p, filename) {
			return f.decided(filename, Decision{Stage: StageExcluded, Pattern: p, Rescued: rescued})
		}
	}

	d := Decision{Process: true, Stage: StageAccepted, Rescued: rescued}
	if rescued {
		d.Pattern = rescuedBy.String()
	}
	return f.decided(filename, d)
}

func (f *Filter) decided(filename string, d Decision) Decision {
	f.logger.Trace().
		Str("file", filename).
		Bool("process", d.Process).
		Str("stage", string(d.Stage)).
		Str("pattern", d.Pattern).
		Msg("Filter decision")
	return d
}

// checkIgnore runs the two-pass ignore check. ignoredBy is the first normal
// pattern matching filename, rescuedBy the first negation whose inner pattern
// matches. Line order between the two groups does not matter.
func (f *Filter) checkIgnore(filename string) (ignoredBy, rescuedBy Pattern) {
	var negations []Negate
	for _, p := range f.ignore {
		if n, ok := p.(Negate); ok {
			negations = append(negations, n)
			continue
		}
		if ignoredBy == nil && matchesClassified(p, filename) {
			ignoredBy = p
		}
	}

	if ignoredBy == nil {
		return nil, nil
	}

	for _, n := range negations {
		if matchesClassified(n.Inner, filename) {
			return ignoredBy, n
		}
	}
	return ignoredBy, nil
}

func isIncludeAll(include []string) bool {
	return len(include) == 1 && include[0] == "*"
}
