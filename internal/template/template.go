// Package template renders the assembled prompt context through a
// text/template with the sprig function map available.
package template

import (
	"fmt"
	"os"
	"strings"
	texttemplate "text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/temirov/codeprompt/internal/types"
)

const promptTemplateName = "prompt"

// defaultTemplateText is the built-in template used when no template file is
// provided. It mirrors the layout the tool has always produced: a heading,
// the directory tree, every file section, an optional git section, and the
// token total.
var defaultTemplateText = strings.Join([]string{
	"# Codebase: {{ .DirectoryName }}",
	"",
	"## Source tree",
	"",
	"```",
	"{{ .TreeText }}```",
	"",
	"## Files",
	"",
	"{{ range .Files }}{{ .FormattedContent }}",
	"{{ end }}",
	"{{- if .GitDiffOutput }}",
	"## Git",
	"",
	"```diff",
	"{{ .GitDiffOutput }}```",
	"{{ end }}",
	"Total Tokens: {{ .TokenCount }}",
	"",
}, "\n")

// Context is the structured data handed to the prompt template.
type Context struct {
	DirectoryName string
	Files         []types.RenderedFile
	TreeText      string
	GitDiffOutput string
	TokenCount    int
}

// LoadTemplateText returns the template text to render: the contents of
// templatePath when provided, the built-in default otherwise.
func LoadTemplateText(templatePath string) (string, error) {
	if templatePath == "" {
		return defaultTemplateText, nil
	}
	templateBytes, readError := os.ReadFile(templatePath)
	if readError != nil {
		return "", fmt.Errorf("reading template %s: %w", templatePath, readError)
	}
	return string(templateBytes), nil
}

// Render executes templateText against the context with sprig functions in
// scope.
func Render(templateText string, templateContext Context) (string, error) {
	parsedTemplate, parseError := texttemplate.New(promptTemplateName).Funcs(sprig.FuncMap()).Parse(templateText)
	if parseError != nil {
		return "", fmt.Errorf("parsing template: %w", parseError)
	}
	var renderedBuilder strings.Builder
	if executeError := parsedTemplate.Execute(&renderedBuilder, templateContext); executeError != nil {
		return "", fmt.Errorf("rendering template: %w", executeError)
	}
	return renderedBuilder.String(), nil
}
