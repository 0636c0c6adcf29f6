// Package types defines the cross-package data structures used by the codeprompt CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
)

// Warning kinds produced during traversal and prompt assembly.
const (
	WarningKindIgnoreLoad     = "ignore-load"
	WarningKindFileRead       = "file-read"
	WarningKindPatternCompile = "pattern-compile"
	WarningKindTokenizer      = "tokenizer"
	WarningKindGit            = "git"
	WarningKindClipboard      = "clipboard"
)

// Warning records a non-fatal failure encountered while producing a prompt.
// Warnings never abort a run; callers surface them on stderr after the walk.
type Warning struct {
	Kind   string
	Path   string
	Detail string
}

// String renders the warning in the single-line form printed to stderr.
func (warning Warning) String() string {
	if warning.Path == "" {
		return "Warning [" + warning.Kind + "]: " + warning.Detail
	}
	return "Warning [" + warning.Kind + "] " + warning.Path + ": " + warning.Detail
}

// FileNode is one selected file: its location, detected language tag, and
// content. Content is populated only during the read phase and only for files
// whose selection decision includes content.
type FileNode struct {
	RelativePath string
	AbsolutePath string
	Language     string
	Content      string
}

// TreeNode is one node of the rendered directory tree. Directory nodes own
// their children in traversal order; leaf nodes reference the originating
// relative path.
type TreeNode struct {
	Name         string
	RelativePath string
	Type         string
	Children     []*TreeNode
}

// IsDirectory reports whether the node represents a directory.
func (node *TreeNode) IsDirectory() bool {
	return node.Type == NodeTypeDirectory
}

// RenderedFile is the per-file record handed to the template engine.
type RenderedFile struct {
	Path             string `json:"path"`
	Language         string `json:"language"`
	Content          string `json:"content"`
	FormattedContent string `json:"formatted_content"`
}

// PromptEnvelope is the JSON output document produced by the --json flag.
type PromptEnvelope struct {
	Prompt        string   `json:"prompt"`
	DirectoryName string   `json:"directory_name"`
	TokenCount    int      `json:"token_count"`
	ModelInfo     string   `json:"model_info"`
	Files         []string `json:"files"`
}
