package utils

import "testing"

// TestClassifyBytes verifies the closed text/binary/unknown classification.
func TestClassifyBytes(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected ContentClass
	}{
		{name: "empty content is unknown", data: nil, expected: ContentClassUnknown},
		{name: "plain text", data: []byte("package main\n"), expected: ContentClassText},
		{name: "null byte is binary", data: []byte{0x68, 0x00, 0x69}, expected: ContentClassBinary},
		{name: "invalid utf8 is binary", data: []byte{0xff, 0xfe, 0xfd}, expected: ContentClassBinary},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subtestHandle *testing.T) {
			if contentClass := ClassifyBytes(testCase.data); contentClass != testCase.expected {
				subtestHandle.Fatalf("expected class %d, got %d", testCase.expected, contentClass)
			}
		})
	}
}

// TestClassifyFileContentTextExtension verifies the extension override for
// empty files with known text extensions.
func TestClassifyFileContentTextExtension(testingHandle *testing.T) {
	if contentClass := ClassifyFileContent("notes.md", nil); contentClass != ContentClassText {
		testingHandle.Fatalf("expected empty markdown to classify as text, got %d", contentClass)
	}
	if contentClass := ClassifyFileContent("blob.dat", nil); contentClass != ContentClassUnknown {
		testingHandle.Fatalf("expected empty unknown extension to stay unknown, got %d", contentClass)
	}
}

// TestLanguageTag verifies extension-derived language tags.
func TestLanguageTag(testingHandle *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{path: "src/main.py", expected: "py"},
		{path: "cmd/app/main.go", expected: "go"},
		{path: "Makefile", expected: ""},
		{path: "archive.tar.gz", expected: "gz"},
	}
	for _, testCase := range testCases {
		if languageTag := LanguageTag(testCase.path); languageTag != testCase.expected {
			testingHandle.Fatalf("path %s: expected tag %q, got %q", testCase.path, testCase.expected, languageTag)
		}
	}
}
