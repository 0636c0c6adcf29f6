// Package pattern compiles comma-separated glob lists into reusable path matchers.
//
// Patterns use shell-glob syntax including "**" and character classes, are
// case-sensitive, and are evaluated against forward-slash relative paths. A
// pattern without a path separator matches the basename at any depth. A
// malformed glob is not an error: it degrades to literal string comparison and
// the degradation is reported as a warning.
package pattern

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/codeprompt/internal/types"
)

// malformedPatternDetail explains the literal-match degradation in warnings.
const malformedPatternDetail = "malformed glob pattern; falling back to literal match"

// compiledPattern is one validated entry of a Matcher.
type compiledPattern struct {
	glob         string
	basenameOnly bool
	literal      bool
}

// Matcher answers whether a relative path matches any pattern in the compiled list.
type Matcher struct {
	patterns []compiledPattern
}

// SplitList splits a comma-separated pattern list into trimmed, non-empty entries.
func SplitList(rawPatternList string) []string {
	if strings.TrimSpace(rawPatternList) == "" {
		return nil
	}
	var patternEntries []string
	for _, patternEntry := range strings.Split(rawPatternList, ",") {
		trimmedEntry := strings.TrimSpace(patternEntry)
		if trimmedEntry != "" {
			patternEntries = append(patternEntries, trimmedEntry)
		}
	}
	return patternEntries
}

// Compile builds a Matcher from an ordered pattern list. Malformed globs are
// kept as literal comparisons and reported through the returned warnings.
func Compile(patternList []string) (*Matcher, []types.Warning) {
	matcher := &Matcher{}
	var compileWarnings []types.Warning
	for _, rawPattern := range patternList {
		normalizedPattern := filepathToSlash(rawPattern)
		entry := compiledPattern{
			glob:         normalizedPattern,
			basenameOnly: !strings.Contains(normalizedPattern, "/"),
		}
		if !doublestar.ValidatePattern(normalizedPattern) {
			entry.literal = true
			compileWarnings = append(compileWarnings, types.Warning{
				Kind:   types.WarningKindPatternCompile,
				Path:   rawPattern,
				Detail: malformedPatternDetail,
			})
		}
		matcher.patterns = append(matcher.patterns, entry)
	}
	return matcher, compileWarnings
}

// IsEmpty reports whether the matcher was compiled from an empty pattern list.
func (matcher *Matcher) IsEmpty() bool {
	return matcher == nil || len(matcher.patterns) == 0
}

// Matches reports whether relativePath matches any compiled pattern. The path
// must use forward slashes and be relative to the traversal root.
func (matcher *Matcher) Matches(relativePath string) bool {
	if matcher == nil {
		return false
	}
	normalizedPath := filepathToSlash(relativePath)
	baseName := path.Base(normalizedPath)
	for _, entry := range matcher.patterns {
		if entry.literal {
			if entry.glob == normalizedPath || (entry.basenameOnly && entry.glob == baseName) {
				return true
			}
			continue
		}
		if entry.basenameOnly {
			if isMatched, matchError := doublestar.Match(entry.glob, baseName); matchError == nil && isMatched {
				return true
			}
			continue
		}
		if isMatched, matchError := doublestar.Match(entry.glob, normalizedPath); matchError == nil && isMatched {
			return true
		}
	}
	return false
}

// filepathToSlash normalizes backslash separators to forward slashes.
func filepathToSlash(pathValue string) string {
	return strings.ReplaceAll(pathValue, "\\", "/")
}
