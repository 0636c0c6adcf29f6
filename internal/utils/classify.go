package utils

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ContentClass is the closed classification of file content.
type ContentClass int

const (
	// ContentClassText marks content safe to embed in a prompt verbatim.
	ContentClassText ContentClass = iota
	// ContentClassBinary marks content that must be omitted from prompts.
	ContentClassBinary
	// ContentClassUnknown marks empty content whose nature cannot be determined.
	ContentClassUnknown
)

// sniffLength defines the maximum number of bytes inspected when classifying content.
const sniffLength = 8000

// textExtensions lists extensions always classified as text regardless of the byte sniff.
var textExtensions = map[string]struct{}{
	".md": {}, ".txt": {}, ".rst": {}, ".adoc": {},
}

// ClassifyBytes classifies the provided content as text, binary, or unknown.
// Only the first sniffLength bytes are inspected.
func ClassifyBytes(data []byte) ContentClass {
	if len(data) == 0 {
		return ContentClassUnknown
	}
	sample := data
	if len(sample) > sniffLength {
		sample = sample[:sniffLength]
	}
	for _, byteValue := range sample {
		if byteValue == 0 {
			return ContentClassBinary
		}
	}
	if !utf8.Valid(sample) {
		return ContentClassBinary
	}
	return ContentClassText
}

// ClassifyFileContent classifies content for the file at filePath, letting a
// known text extension override an inconclusive byte sniff.
func ClassifyFileContent(filePath string, data []byte) ContentClass {
	contentClass := ClassifyBytes(data)
	if contentClass == ContentClassUnknown {
		extension := strings.ToLower(filepath.Ext(filePath))
		if _, isTextExtension := textExtensions[extension]; isTextExtension {
			return ContentClassText
		}
	}
	return contentClass
}

// LanguageTag returns the fenced-code-block language tag for a path, derived
// from the file extension without its leading dot. Paths without an extension
// yield an empty tag.
func LanguageTag(relativePath string) string {
	extension := filepath.Ext(relativePath)
	return strings.TrimPrefix(extension, ".")
}
