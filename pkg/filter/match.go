package filter

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Sentinel exclude patterns. They look like globs but are matched on the
// first character only.
const (
	SentinelDotPrefix   = ".*"
	SentinelUpperPrefix = "[A-Z]*"
)

// Matches evaluates a raw include/exclude pattern against a file name.
// Rules are tried in order and the first applicable one decides:
// sentinels, then wildcard-free substring match, then the `*suffix`
// shortcut, then a full anchored glob.
func Matches(pattern, filename string) bool {
	switch pattern {
	case SentinelDotPrefix:
		return strings.HasPrefix(filename, ".")
	case SentinelUpperPrefix:
		return filename != "" && filename[0] >= 'A' && filename[0] <= 'Z'
	}

	if !hasWildcard(pattern) {
		return matchSimple(pattern, filename)
	}

	if suffix, ok := starSuffix(pattern); ok {
		return strings.HasSuffix(filename, suffix)
	}

	return matchGlob(pattern, filename)
}

// matchesClassified evaluates a classified ignore pattern. Negations never
// match on their own; isIgnored handles them.
func matchesClassified(p Pattern, filename string) bool {
	switch p := p.(type) {
	case Simple:
		return matchSimple(p.Text, filename)
	case Glob:
		return matchGlob(p.Text, filename)
	case Directory:
		// Only names are known here, so a directory rule matches like a simple one.
		return matchSimple(p.Text, filename)
	case RootRelative:
		if hasWildcard(p.Text) {
			return matchGlob(p.Text, filename)
		}
		return strings.HasPrefix(filename, p.Text)
	default:
		return false
	}
}

// matchSimple is deliberately unanchored: "rc" matches "bashrc".
func matchSimple(pattern, filename string) bool {
	return filename == pattern || strings.Contains(filename, pattern)
}

// starSuffix reports whether pattern has the shape `*X` with no other
// wildcard, returning X.
func starSuffix(pattern string) (string, bool) {
	if !strings.HasPrefix(pattern, "*") {
		return "", false
	}
	rest := pattern[1:]
	if hasWildcard(rest) {
		return "", false
	}
	return rest, true
}

// globCacheSize bounds the compiled glob cache. Pattern sets are small, so
// this is rarely reached.
const globCacheSize = 512

// globCache holds compiled globs keyed by pattern. Compiled expressions are
// immutable and the cache is safe for concurrent use.
var globCache, _ = lru.New[string, *regexp.Regexp](globCacheSize)

func matchGlob(pattern, filename string) bool {
	re, ok := globCache.Get(pattern)
	if !ok {
		var err error
		re, err = globRegexp(pattern)
		if err != nil {
			// Only patterns that are not valid UTF-8 fail to compile.
			return false
		}
		globCache.Add(pattern, re)
	}
	return re.MatchString(filename)
}

// globRegexp translates a glob into an anchored expression. Everything
// except `*` and `?` is matched literally.
func globRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`(?s)^`)
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}
	b.WriteString(`$`)
	return regexp.Compile(b.String())
}

func hasWildcard(s string) bool {
	return strings.ContainsAny(s, "*?")
}
