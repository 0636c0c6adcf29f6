// Package output formats selected files into Markdown sections and produces
// the final raw or JSON output documents.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/temirov/codeprompt/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	sectionHeaderFormat = "### %s\n"
	codeFence           = "```"
	lineNumberSeparator = ": "

	// modelInfoDescription mirrors the model families the default encoding serves.
	modelInfoDescription = "ChatGPT models, text-embedding-ada-002"

	outputFilePermissions = 0o644
)

// FormatOptions controls how file content is embedded into Markdown sections.
type FormatOptions struct {
	LineNumbers bool
	CodeBlock   bool
}

// FormatFiles converts selected files into the per-file records consumed by
// the template engine, preserving traversal order.
func FormatFiles(fileNodes []types.FileNode, formatOptions FormatOptions) []types.RenderedFile {
	renderedFiles := make([]types.RenderedFile, 0, len(fileNodes))
	for _, fileNode := range fileNodes {
		renderedFiles = append(renderedFiles, types.RenderedFile{
			Path:             fileNode.RelativePath,
			Language:         fileNode.Language,
			Content:          fileNode.Content,
			FormattedContent: formatFileSection(fileNode, formatOptions),
		})
	}
	return renderedFiles
}

// formatFileSection renders one file as a Markdown section headed by its
// relative path, optionally fenced and optionally line-numbered.
func formatFileSection(fileNode types.FileNode, formatOptions FormatOptions) string {
	var sectionBuilder strings.Builder
	sectionBuilder.WriteString(fmt.Sprintf(sectionHeaderFormat, fileNode.RelativePath))

	sectionContent := fileNode.Content
	if formatOptions.LineNumbers {
		sectionContent = numberLines(sectionContent)
	}

	if formatOptions.CodeBlock {
		sectionBuilder.WriteString(codeFence)
		sectionBuilder.WriteString(fileNode.Language)
		sectionBuilder.WriteString("\n")
		sectionBuilder.WriteString(sectionContent)
		if !strings.HasSuffix(sectionContent, "\n") {
			sectionBuilder.WriteString("\n")
		}
		sectionBuilder.WriteString(codeFence)
		sectionBuilder.WriteString("\n")
	} else {
		sectionBuilder.WriteString(sectionContent)
		if !strings.HasSuffix(sectionContent, "\n") {
			sectionBuilder.WriteString("\n")
		}
	}
	return sectionBuilder.String()
}

// numberLines prefixes every content line with its one-based line number.
func numberLines(content string) string {
	contentLines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	var numberedBuilder strings.Builder
	for lineIndex, contentLine := range contentLines {
		numberedBuilder.WriteString(strconv.Itoa(lineIndex + 1))
		numberedBuilder.WriteString(lineNumberSeparator)
		numberedBuilder.WriteString(contentLine)
		numberedBuilder.WriteString("\n")
	}
	return numberedBuilder.String()
}

// ConcatenateSections joins the formatted sections of all files. The result
// is the text handed to the token counter.
func ConcatenateSections(renderedFiles []types.RenderedFile) string {
	var concatenationBuilder strings.Builder
	for _, renderedFile := range renderedFiles {
		concatenationBuilder.WriteString(renderedFile.FormattedContent)
		concatenationBuilder.WriteString("\n")
	}
	return concatenationBuilder.String()
}

// BuildEnvelope assembles the JSON output document for the --json flag.
func BuildEnvelope(prompt string, directoryName string, tokenCount int, renderedFiles []types.RenderedFile) types.PromptEnvelope {
	filePaths := make([]string, 0, len(renderedFiles))
	for _, renderedFile := range renderedFiles {
		filePaths = append(filePaths, renderedFile.Path)
	}
	return types.PromptEnvelope{
		Prompt:        prompt,
		DirectoryName: directoryName,
		TokenCount:    tokenCount,
		ModelInfo:     modelInfoDescription,
		Files:         filePaths,
	}
}

// RenderEnvelopeJSON marshals the envelope as indented JSON.
func RenderEnvelopeJSON(envelope types.PromptEnvelope) (string, error) {
	encodedEnvelope, jsonEncodeError := json.MarshalIndent(envelope, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encodedEnvelope), nil
}

// WriteToFile saves the generated prompt to outputPath.
func WriteToFile(outputPath string, content string) error {
	if writeError := os.WriteFile(outputPath, []byte(content), outputFilePermissions); writeError != nil {
		return fmt.Errorf("saving output to %s: %w", outputPath, writeError)
	}
	return nil
}

// PrintWarnings writes every recorded warning to the provided writer, one per
// line, in the order they were recorded.
func PrintWarnings(warningWriter io.Writer, warnings []types.Warning) {
	for _, recordedWarning := range warnings {
		fmt.Fprintln(warningWriter, recordedWarning.String())
	}
}
