// Package tree serializes a TreeNode hierarchy into the conventional
// branch-drawing text form.
package tree

import (
	"strings"

	"github.com/temirov/codeprompt/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
)

// Render returns the tree text for the provided root node. The root renders
// on its own line; every level below it uses branch connectors, with the last
// child of each directory receiving the corner connector.
func Render(rootNode *types.TreeNode) string {
	if rootNode == nil {
		return ""
	}
	var treeBuilder strings.Builder
	treeBuilder.WriteString(rootNode.Name)
	treeBuilder.WriteString("\n")
	renderChildren(&treeBuilder, rootNode, "")
	return treeBuilder.String()
}

// renderChildren writes each child of node with the prefix accumulated from
// ancestor levels that still have siblings below them.
func renderChildren(treeBuilder *strings.Builder, node *types.TreeNode, ancestorPrefix string) {
	for childIndex, childNode := range node.Children {
		isLastChild := childIndex == len(node.Children)-1

		connector := treeBranchConnector
		childPadding := treeBranchPadding
		if isLastChild {
			connector = treeLastConnector
			childPadding = treeLastPadding
		}

		treeBuilder.WriteString(ancestorPrefix)
		treeBuilder.WriteString(connector)
		treeBuilder.WriteString(childNode.Name)
		treeBuilder.WriteString("\n")

		if childNode.IsDirectory() {
			renderChildren(treeBuilder, childNode, ancestorPrefix+childPadding)
		}
	}
}
