// Package config validates CLI input into immutable traversal configuration
// and loads optional application defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "resolving absolute path for %s: %w"
	// errorPathMissingFormat reports a root path that does not exist.
	errorPathMissingFormat = "root path %s does not exist: %w"
	// errorNotDirectoryFormat reports a root path that is not a directory.
	errorNotDirectoryFormat = "root path %s is not a directory"
)

// TraversalConfig carries everything the walker needs to traverse a root.
// It is immutable once constructed; NewTraversalConfig is the only constructor.
type TraversalConfig struct {
	RootPath           string
	IncludePatterns    []string
	ExcludePatterns    []string
	ExcludeFromTree    bool
	RespectIgnoreFiles bool
}

// NewTraversalConfig canonicalizes and validates the root path and captures
// the selection flags. A missing or non-directory root is the only fatal
// configuration error in the tool.
func NewTraversalConfig(rootPath string, includePatterns []string, excludePatterns []string, excludeFromTree bool, respectIgnoreFiles bool) (TraversalConfig, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return TraversalConfig{}, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	cleanedRootPath := filepath.Clean(absoluteRootPath)

	rootInfo, statError := os.Stat(cleanedRootPath)
	if statError != nil {
		return TraversalConfig{}, fmt.Errorf(errorPathMissingFormat, rootPath, statError)
	}
	if !rootInfo.IsDir() {
		return TraversalConfig{}, fmt.Errorf(errorNotDirectoryFormat, rootPath)
	}

	return TraversalConfig{
		RootPath:           cleanedRootPath,
		IncludePatterns:    append([]string(nil), includePatterns...),
		ExcludePatterns:    append([]string(nil), excludePatterns...),
		ExcludeFromTree:    excludeFromTree,
		RespectIgnoreFiles: respectIgnoreFiles,
	}, nil
}
