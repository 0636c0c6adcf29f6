// Package ignore loads version-control ignore files into an ordered rule set
// and answers per-path ignore queries.
//
// Rule semantics follow the conventional ignore-file format: one glob per
// line, "#" comments and blank lines skipped, a leading "!" negates a prior
// match, a trailing "/" restricts the rule to directories, and the last
// matching rule wins. Each query is a pure left-to-right fold over the rule
// list; the set carries no mutable state after construction.
package ignore

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/temirov/codeprompt/internal/types"
)

const (
	commentPrefix  = "#"
	negationPrefix = "!"
	// emptyRuleDetail reports a line reduced to nothing after stripping markers.
	emptyRuleDetail = "ignore rule is empty after stripping markers; line skipped"
	// malformedRuleDetail reports a rule whose glob cannot be compiled.
	malformedRuleDetail = "malformed ignore rule; line skipped"
)

// rule is one parsed ignore-file line.
type rule struct {
	glob          string
	negated       bool
	directoryOnly bool
	anchored      bool
}

// RuleSet is an ordered, read-only collection of ignore rules scoped to a
// traversal root. The zero value matches nothing.
type RuleSet struct {
	rules []rule
}

// Load reads the ignore file at the traversal root. A missing file is not an
// error: the returned set matches nothing. Unparseable lines are skipped and
// reported through the returned warnings.
func Load(rootDirectoryPath string, ignoreFileName string) (*RuleSet, []types.Warning, error) {
	ignoreFilePath := filepath.Join(rootDirectoryPath, ignoreFileName)
	fileHandle, openError := os.Open(ignoreFilePath)
	if openError != nil {
		if os.IsNotExist(openError) {
			return &RuleSet{}, nil, nil
		}
		return nil, nil, openError
	}
	defer fileHandle.Close()

	var ruleLines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		ruleLines = append(ruleLines, scanner.Text())
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, nil, scanError
	}

	ruleSet, parseWarnings := Parse(ruleLines)
	return ruleSet, parseWarnings, nil
}

// Parse builds a RuleSet from raw ignore-file lines, preserving line order.
func Parse(ruleLines []string) (*RuleSet, []types.Warning) {
	ruleSet := &RuleSet{}
	var parseWarnings []types.Warning
	for _, rawLine := range ruleLines {
		trimmedLine := strings.TrimSpace(rawLine)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		parsedRule, parseWarning := parseRuleLine(trimmedLine)
		if parseWarning != nil {
			parseWarnings = append(parseWarnings, *parseWarning)
			continue
		}
		ruleSet.rules = append(ruleSet.rules, parsedRule)
	}
	return ruleSet, parseWarnings
}

// parseRuleLine parses a single non-comment ignore line into a rule.
func parseRuleLine(trimmedLine string) (rule, *types.Warning) {
	parsedRule := rule{}
	ruleText := trimmedLine

	if strings.HasPrefix(ruleText, negationPrefix) {
		parsedRule.negated = true
		ruleText = strings.TrimPrefix(ruleText, negationPrefix)
	}
	if strings.HasSuffix(ruleText, "/") {
		parsedRule.directoryOnly = true
		ruleText = strings.TrimSuffix(ruleText, "/")
	}
	if strings.HasPrefix(ruleText, "/") {
		parsedRule.anchored = true
		ruleText = strings.TrimPrefix(ruleText, "/")
	}
	if strings.Contains(ruleText, "/") {
		parsedRule.anchored = true
	}

	if ruleText == "" {
		return rule{}, &types.Warning{
			Kind:   types.WarningKindIgnoreLoad,
			Path:   trimmedLine,
			Detail: emptyRuleDetail,
		}
	}
	if !doublestar.ValidatePattern(ruleText) {
		return rule{}, &types.Warning{
			Kind:   types.WarningKindIgnoreLoad,
			Path:   trimmedLine,
			Detail: malformedRuleDetail,
		}
	}

	parsedRule.glob = ruleText
	return parsedRule, nil
}

// IsIgnored reports whether the path is excluded by the rule set. The path
// must be relative to the traversal root and use forward slashes. Later rules
// override earlier ones, so a negated rule can re-include a path that an
// earlier rule excluded.
func (ruleSet *RuleSet) IsIgnored(relativePath string, isDirectory bool) bool {
	if ruleSet == nil {
		return false
	}
	normalizedPath := strings.Trim(filepath.ToSlash(relativePath), "/")
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}

	ignored := false
	for _, currentRule := range ruleSet.rules {
		if currentRule.matches(normalizedPath, isDirectory) {
			ignored = !currentRule.negated
		}
	}
	return ignored
}

// matches reports whether the rule covers the path itself or, through an
// ancestor directory, anything beneath a matched directory.
func (currentRule rule) matches(normalizedPath string, isDirectory bool) bool {
	if currentRule.matchesTarget(normalizedPath) && (!currentRule.directoryOnly || isDirectory) {
		return true
	}
	for ancestorPath := path.Dir(normalizedPath); ancestorPath != "." && ancestorPath != "/"; ancestorPath = path.Dir(ancestorPath) {
		if currentRule.matchesTarget(ancestorPath) {
			return true
		}
	}
	return false
}

// matchesTarget evaluates the rule glob against one candidate path. Unanchored
// rules match the basename or the path at any depth; anchored rules match the
// full relative path.
func (currentRule rule) matchesTarget(candidatePath string) bool {
	if currentRule.anchored {
		isMatched, matchError := doublestar.Match(currentRule.glob, candidatePath)
		return matchError == nil && isMatched
	}
	if isMatched, matchError := doublestar.Match(currentRule.glob, path.Base(candidatePath)); matchError == nil && isMatched {
		return true
	}
	isMatched, matchError := doublestar.Match("**/"+currentRule.glob, candidatePath)
	return matchError == nil && isMatched
}
