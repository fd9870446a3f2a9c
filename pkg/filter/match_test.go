// Test Type: Unit Test
// Description: Tests for raw and classified pattern matching

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		filename string
		want     bool
	}{
		// sentinels
		{"dot_sentinel_hidden", ".*", ".hidden", true},
		{"dot_sentinel_plain", ".*", "bashrc", false},
		{"dot_sentinel_dot_inside", ".*", "a.b", false},
		{"dot_sentinel_empty", ".*", "", false},
		{"upper_sentinel_readme", "[A-Z]*", "README", true},
		{"upper_sentinel_lower", "[A-Z]*", "readme", false},
		{"upper_sentinel_digit", "[A-Z]*", "1abc", false},
		{"upper_sentinel_non_ascii", "[A-Z]*", "Ärger", false},
		{"upper_sentinel_empty", "[A-Z]*", "", false},

		// no wildcard: equality or substring
		{"simple_exact", "bashrc", "bashrc", true},
		{"simple_substring", "rc", "bashrc", true},
		{"simple_substring_middle", "vim", "gvimrc", true},
		{"simple_no_match", "zsh", "bashrc", false},

		// star-prefix suffix
		{"suffix_match", "*.conf", "nginx.conf", true},
		{"suffix_exact_suffix_only", "*.conf", ".conf", true},
		{"suffix_no_match", "*.rc", "bashrc", false},
		{"suffix_match_rc", "*.rc", "test.rc", true},
		{"lone_star", "*", "anything", true},
		{"lone_star_empty", "*", "", true},

		// general glob
		{"glob_anchored", "n*.conf", "nginx.conf", true},
		{"glob_anchored_prefix_required", "n*.conf", "xnginx.conf", false},
		{"glob_trailing_star", "bash*", "bashrc", true},
		{"glob_trailing_star_no_match", "bash*", "zshrc", false},
		{"glob_question", "file?.txt", "file1.txt", true},
		{"glob_question_exactly_one", "file?.txt", "file12.txt", false},
		{"glob_dot_literal", "a?b.*", "a1bxc", false},
		{"glob_dot_literal_ok", "a?b.*", "a1b.c", true},
		{"glob_regex_meta_literal", "a+b*", "a+bc", true},
		{"glob_regex_meta_not_operator", "a+b*", "aabc", false},
		{"glob_brackets_literal", "x[1]*", "x[1]y", true},
		{"glob_middle_star", "*rc*", "bashrc.local", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.pattern, tt.filename))
		})
	}
}

func TestStarSuffixAgreesWithGlob(t *testing.T) {
	patterns := []string{"*", "*.conf", "*rc", "*.tar.gz", "*+x", "*[a]", "*\n", "*é"}
	filenames := []string{
		"", "nginx.conf", "bashrc", ".conf", "conf", "a.tar.gz", "tar.gz.x",
		"1+x", "x[a]", "xa", "line\n", "line\nmore", "café", "cafe", "rc",
	}

	for _, p := range patterns {
		suffix, ok := starSuffix(p)
		if !assert.True(t, ok, "pattern %q should take the suffix path", p) {
			continue
		}
		for _, f := range filenames {
			fast := len(f) >= len(suffix) && f[len(f)-len(suffix):] == suffix
			assert.Equal(t, matchGlob(p, f), fast, "pattern %q filename %q", p, f)
			assert.Equal(t, matchGlob(p, f), Matches(p, f), "pattern %q filename %q", p, f)
		}
	}
}

func TestStarSuffixShape(t *testing.T) {
	_, ok := starSuffix("*.c*")
	assert.False(t, ok)
	_, ok = starSuffix("*a?")
	assert.False(t, ok)
	_, ok = starSuffix("a*")
	assert.False(t, ok)
	s, ok := starSuffix("*.log")
	assert.True(t, ok)
	assert.Equal(t, ".log", s)
}

func TestMatchGlobInvalidUTF8(t *testing.T) {
	assert.False(t, matchGlob("\xff*", "\xffabc"))
}

func TestMatchGlobCachesCompiledPattern(t *testing.T) {
	pattern := "cache-test-?.conf"
	globCache.Remove(pattern)

	assert.True(t, matchGlob(pattern, "cache-test-1.conf"))
	assert.True(t, globCache.Contains(pattern))
	assert.False(t, matchGlob(pattern, "cache-test-12.conf"), "cached expression stays anchored")
}

func TestMatchesClassified(t *testing.T) {
	tests := []struct {
		name     string
		pattern  Pattern
		filename string
		want     bool
	}{
		{"simple_substring", Simple{Text: "cache"}, "my-cache-dir", true},
		{"simple_ignores_sentinels", Simple{Text: ".*"}, ".hidden", false},
		{"simple_literal_dot_star", Simple{Text: ".*"}, "a.*b", true},
		{"glob_anchored", Glob{Text: "*.tmp"}, "debug.tmp", true},
		{"glob_anchored_no_partial", Glob{Text: "*.tmp"}, "debug.tmp.bak", false},
		{"glob_upper_sentinel_is_literal", Glob{Text: "[A-Z]*"}, "README", false},
		{"directory_by_name", Directory{Text: "cache"}, "cache", true},
		{"directory_substring", Directory{Text: "cache"}, "cachedir", true},
		{"directory_no_match", Directory{Text: "cache"}, "build", false},
		{"root_relative_prefix", RootRelative{Text: "root-only"}, "root-only", true},
		{"root_relative_prefix_longer", RootRelative{Text: "root-only"}, "root-only-file", true},
		{"root_relative_not_substring", RootRelative{Text: "root-only"}, "not-root-only-file", false},
		{"root_relative_glob", RootRelative{Text: "root*"}, "rootfile", true},
		{"root_relative_glob_anchored", RootRelative{Text: "root*"}, "xroot", false},
		{"negate_never_matches_alone", Negate{Inner: Simple{Text: "x"}}, "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesClassified(tt.pattern, tt.filename))
		})
	}
}
