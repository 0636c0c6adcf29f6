// Package selection combines ignore rules with include and exclude matchers
// into a single tri-state decision per path.
package selection

import (
	"github.com/temirov/codeprompt/internal/ignore"
	"github.com/temirov/codeprompt/internal/pattern"
)

// Decision is the tri-state outcome of evaluating one path.
type Decision int

const (
	// ContentIncluded selects the path for both the tree and the content list.
	ContentIncluded Decision = iota
	// TreeOnlyExcluded keeps the path in the rendered tree but skips its content.
	TreeOnlyExcluded
	// FullyExcluded removes the path from both the tree and the content list.
	FullyExcluded
)

// String returns the decision name used in diagnostics.
func (decision Decision) String() string {
	switch decision {
	case ContentIncluded:
		return "content-included"
	case TreeOnlyExcluded:
		return "tree-only-excluded"
	case FullyExcluded:
		return "fully-excluded"
	default:
		return "unknown"
	}
}

// Policy decides inclusion for every path of a traversal. All fields are
// read-only after construction, so a Policy may be shared across concurrent
// readers and every decision is reproducible from the path alone.
type Policy struct {
	Includes           *pattern.Matcher
	Excludes           *pattern.Matcher
	IgnoreRules        *ignore.RuleSet
	ExcludeFromTree    bool
	RespectIgnoreFiles bool
}

// Decide evaluates relativePath against the policy. Rules apply in order and
// the first matching rule wins: ignore rules, then exclude patterns, then the
// include filter. Directories are only ever evaluated for pruning; the include
// filter applies to files alone so that matching files deeper in an unmatched
// directory remain reachable.
func (policy *Policy) Decide(relativePath string, isDirectory bool) Decision {
	if policy.RespectIgnoreFiles && policy.IgnoreRules.IsIgnored(relativePath, isDirectory) {
		return FullyExcluded
	}
	if !policy.Excludes.IsEmpty() && policy.Excludes.Matches(relativePath) {
		if policy.ExcludeFromTree {
			return FullyExcluded
		}
		return TreeOnlyExcluded
	}
	if !isDirectory && !policy.Includes.IsEmpty() && !policy.Includes.Matches(relativePath) {
		return FullyExcluded
	}
	return ContentIncluded
}
