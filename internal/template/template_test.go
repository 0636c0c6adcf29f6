package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/codeprompt/internal/types"
)

// sampleContext builds a minimal prompt context for rendering tests.
func sampleContext() Context {
	return Context{
		DirectoryName: "project",
		Files: []types.RenderedFile{
			{Path: "a.py", FormattedContent: "### a.py\n```py\nprint('a')\n```\n"},
		},
		TreeText:   "project\n└── a.py\n",
		TokenCount: 17,
	}
}

// TestRenderDefaultTemplate verifies the built-in template includes the
// heading, tree, file sections, and token total.
func TestRenderDefaultTemplate(testingHandle *testing.T) {
	templateText, loadError := LoadTemplateText("")
	if loadError != nil {
		testingHandle.Fatalf("LoadTemplateText failed: %v", loadError)
	}

	prompt, renderError := Render(templateText, sampleContext())
	if renderError != nil {
		testingHandle.Fatalf("Render failed: %v", renderError)
	}

	for _, expectedFragment := range []string{
		"# Codebase: project",
		"└── a.py",
		"### a.py",
		"Total Tokens: 17",
	} {
		if !strings.Contains(prompt, expectedFragment) {
			testingHandle.Fatalf("expected prompt to contain %q, got:\n%s", expectedFragment, prompt)
		}
	}
	if strings.Contains(prompt, "## Git") {
		testingHandle.Fatalf("expected no git section without git output, got:\n%s", prompt)
	}
}

// TestRenderDefaultTemplateWithGitOutput verifies the conditional git section.
func TestRenderDefaultTemplateWithGitOutput(testingHandle *testing.T) {
	templateContext := sampleContext()
	templateContext.GitDiffOutput = "diff --git a/a.py b/a.py\n"

	templateText, _ := LoadTemplateText("")
	prompt, renderError := Render(templateText, templateContext)
	if renderError != nil {
		testingHandle.Fatalf("Render failed: %v", renderError)
	}
	if !strings.Contains(prompt, "## Git") || !strings.Contains(prompt, "diff --git") {
		testingHandle.Fatalf("expected git section in prompt, got:\n%s", prompt)
	}
}

// TestRenderUserTemplateWithSprigFunctions verifies that a user template file
// is loaded and that sprig functions are available.
func TestRenderUserTemplateWithSprigFunctions(testingHandle *testing.T) {
	templateDirectory := testingHandle.TempDir()
	templatePath := filepath.Join(templateDirectory, "prompt.tmpl")
	userTemplate := "{{ .DirectoryName | upper }}: {{ len .Files }} files"
	if writeError := os.WriteFile(templatePath, []byte(userTemplate), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write template: %v", writeError)
	}

	templateText, loadError := LoadTemplateText(templatePath)
	if loadError != nil {
		testingHandle.Fatalf("LoadTemplateText failed: %v", loadError)
	}
	prompt, renderError := Render(templateText, sampleContext())
	if renderError != nil {
		testingHandle.Fatalf("Render failed: %v", renderError)
	}
	if prompt != "PROJECT: 1 files" {
		testingHandle.Fatalf("unexpected rendering: %q", prompt)
	}
}

// TestLoadTemplateTextMissingFile verifies the error path for a bad template path.
func TestLoadTemplateTextMissingFile(testingHandle *testing.T) {
	if _, loadError := LoadTemplateText(filepath.Join(testingHandle.TempDir(), "absent.tmpl")); loadError == nil {
		testingHandle.Fatalf("expected an error for a missing template file")
	}
}

// TestRenderMalformedTemplate verifies parse errors are reported.
func TestRenderMalformedTemplate(testingHandle *testing.T) {
	if _, renderError := Render("{{ .Unclosed", sampleContext()); renderError == nil {
		testingHandle.Fatalf("expected a parse error for a malformed template")
	}
}
