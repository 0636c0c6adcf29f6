package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestNewTraversalConfigValidRoot verifies canonicalization and flag capture.
func TestNewTraversalConfigValidRoot(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()

	traversalConfiguration, configurationError := NewTraversalConfig(rootDirectory, []string{"*.py"}, []string{"*.md"}, true, false)
	if configurationError != nil {
		testingHandle.Fatalf("NewTraversalConfig failed: %v", configurationError)
	}
	if !filepath.IsAbs(traversalConfiguration.RootPath) {
		testingHandle.Fatalf("expected absolute root path, got %s", traversalConfiguration.RootPath)
	}
	if !traversalConfiguration.ExcludeFromTree {
		testingHandle.Fatalf("expected excludeFromTree to be captured")
	}
	if traversalConfiguration.RespectIgnoreFiles {
		testingHandle.Fatalf("expected respectIgnoreFiles to be captured")
	}
	if len(traversalConfiguration.IncludePatterns) != 1 || traversalConfiguration.IncludePatterns[0] != "*.py" {
		testingHandle.Fatalf("unexpected include patterns: %v", traversalConfiguration.IncludePatterns)
	}
}

// TestNewTraversalConfigMissingRoot verifies the fatal configuration error for
// a nonexistent root.
func TestNewTraversalConfigMissingRoot(testingHandle *testing.T) {
	missingRoot := filepath.Join(testingHandle.TempDir(), "does-not-exist")
	if _, configurationError := NewTraversalConfig(missingRoot, nil, nil, false, true); configurationError == nil {
		testingHandle.Fatalf("expected an error for a missing root path")
	}
}

// TestNewTraversalConfigRootIsFile verifies the fatal configuration error for
// a root path that is not a directory.
func TestNewTraversalConfigRootIsFile(testingHandle *testing.T) {
	filePath := filepath.Join(testingHandle.TempDir(), "plain.txt")
	if writeError := os.WriteFile(filePath, []byte("content"), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write file: %v", writeError)
	}
	if _, configurationError := NewTraversalConfig(filePath, nil, nil, false, true); configurationError == nil {
		testingHandle.Fatalf("expected an error for a non-directory root path")
	}
}

// TestLoadApplicationConfigurationMissingFile verifies that an absent
// configuration file yields the zero configuration.
func TestLoadApplicationConfigurationMissingFile(testingHandle *testing.T) {
	configuration, loadError := LoadApplicationConfiguration(testingHandle.TempDir())
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration failed: %v", loadError)
	}
	if configuration.Encoding != "" || configuration.Template != "" {
		testingHandle.Fatalf("expected zero configuration, got %+v", configuration)
	}
}

// TestLoadApplicationConfigurationReadsYaml verifies the configuration file
// fields are unmarshaled.
func TestLoadApplicationConfigurationReadsYaml(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()
	configurationContent := "encoding: o200k_base\nexclude:\n  - '*.md'\n  - vendor\n"
	if writeError := os.WriteFile(filepath.Join(workingDirectory, "codeprompt.yaml"), []byte(configurationContent), 0o644); writeError != nil {
		testingHandle.Fatalf("failed to write configuration: %v", writeError)
	}

	configuration, loadError := LoadApplicationConfiguration(workingDirectory)
	if loadError != nil {
		testingHandle.Fatalf("LoadApplicationConfiguration failed: %v", loadError)
	}
	if configuration.Encoding != "o200k_base" {
		testingHandle.Fatalf("unexpected encoding: %q", configuration.Encoding)
	}
	if len(configuration.Exclude) != 2 || configuration.Exclude[0] != "*.md" {
		testingHandle.Fatalf("unexpected exclude list: %v", configuration.Exclude)
	}
}
