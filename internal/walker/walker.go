// Package walker performs the deterministic directory traversal that selects
// files and builds the tree structure handed to the renderer.
//
// Traversal is depth-first with children visited in lexicographic name order,
// so repeated runs over an unchanged filesystem produce identical output. The
// walk is two-phase: phase one applies the selection policy and records which
// files need content, phase two reads those files. A failed read drops only
// that file and records a warning; the walk itself never aborts after the root
// has been validated.
package walker

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/codeprompt/internal/config"
	"github.com/temirov/codeprompt/internal/ignore"
	"github.com/temirov/codeprompt/internal/pattern"
	"github.com/temirov/codeprompt/internal/selection"
	"github.com/temirov/codeprompt/internal/types"
	"github.com/temirov/codeprompt/internal/utils"
)

const (
	// warningReadDirectoryDetail reports a directory whose entries cannot be listed.
	warningReadDirectoryDetail = "unable to read directory; subtree skipped"
	// warningStatDetail reports a symlink or entry that cannot be resolved.
	warningStatDetail = "unable to resolve entry; skipped"
	// warningBinaryContentDetail reports a selected file dropped for binary content.
	warningBinaryContentDetail = "binary content omitted"

	// gitDirectoryName is always pruned; its object store is never prompt material.
	gitDirectoryName = ".git"
)

// Result is the immutable outcome of one traversal.
type Result struct {
	Files    []types.FileNode
	Root     *types.TreeNode
	Warnings []types.Warning
}

// pendingFile is a file selected for content in phase one, read in phase two.
type pendingFile struct {
	relativePath string
	absolutePath string
}

// Walker traverses a single root using a fixed selection policy.
type Walker struct {
	configuration config.TraversalConfig
	policy        *selection.Policy
	setupWarnings []types.Warning
}

// New compiles the pattern matchers, loads ignore rules from the root, and
// returns a Walker ready to traverse. Pattern and ignore-file problems are
// collected as warnings on the eventual Result, not returned as errors.
func New(traversalConfiguration config.TraversalConfig) (*Walker, error) {
	includeMatcher, includeWarnings := pattern.Compile(traversalConfiguration.IncludePatterns)
	excludeMatcher, excludeWarnings := pattern.Compile(traversalConfiguration.ExcludePatterns)

	var ignoreRules *ignore.RuleSet
	var ignoreWarnings []types.Warning
	if traversalConfiguration.RespectIgnoreFiles {
		loadedRules, loadWarnings, loadError := ignore.Load(traversalConfiguration.RootPath, utils.GitIgnoreFileName)
		if loadError != nil {
			return nil, loadError
		}
		ignoreRules = loadedRules
		ignoreWarnings = loadWarnings
	}

	var setupWarnings []types.Warning
	setupWarnings = append(setupWarnings, includeWarnings...)
	setupWarnings = append(setupWarnings, excludeWarnings...)
	setupWarnings = append(setupWarnings, ignoreWarnings...)

	return &Walker{
		configuration: traversalConfiguration,
		setupWarnings: setupWarnings,
		policy: &selection.Policy{
			Includes:           includeMatcher,
			Excludes:           excludeMatcher,
			IgnoreRules:        ignoreRules,
			ExcludeFromTree:    traversalConfiguration.ExcludeFromTree,
			RespectIgnoreFiles: traversalConfiguration.RespectIgnoreFiles,
		},
	}, nil
}

// Policy exposes the walker's selection policy for decision-level testing.
func (directoryWalker *Walker) Policy() *selection.Policy {
	return directoryWalker.policy
}

// Walk traverses the configured root and returns the selected files, the tree
// root, and all warnings recorded along the way. The walk always completes;
// every failure past configuration validation is reported as a warning.
func (directoryWalker *Walker) Walk() *Result {
	result := &Result{
		Root: &types.TreeNode{
			Name:         filepath.Base(directoryWalker.configuration.RootPath),
			RelativePath: ".",
			Type:         types.NodeTypeDirectory,
		},
		Warnings: append([]types.Warning(nil), directoryWalker.setupWarnings...),
	}

	childNodes, pendingFiles := directoryWalker.walkDirectory(directoryWalker.configuration.RootPath, "", result)
	result.Root.Children = childNodes

	result.Files = directoryWalker.readPendingFiles(pendingFiles, result)
	return result
}

// walkDirectory visits one directory level and returns the surviving child
// nodes plus the files queued for the read phase, in traversal order.
func (directoryWalker *Walker) walkDirectory(absoluteDirectoryPath string, relativeDirectoryPath string, result *Result) ([]*types.TreeNode, []pendingFile) {
	directoryEntries, readDirectoryError := os.ReadDir(absoluteDirectoryPath)
	if readDirectoryError != nil {
		result.Warnings = append(result.Warnings, types.Warning{
			Kind:   types.WarningKindFileRead,
			Path:   relativeDirectoryPath,
			Detail: warningReadDirectoryDetail,
		})
		return nil, nil
	}

	var childNodes []*types.TreeNode
	var pendingFiles []pendingFile

	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		if directoryEntry.IsDir() && entryName == gitDirectoryName {
			continue
		}
		if !directoryEntry.IsDir() && entryName == utils.GitIgnoreFileName {
			continue
		}
		absoluteEntryPath := filepath.Join(absoluteDirectoryPath, entryName)
		relativeEntryPath := entryName
		if relativeDirectoryPath != "" {
			relativeEntryPath = path.Join(relativeDirectoryPath, entryName)
		}

		isDirectory, isRegularTarget, resolveOk := resolveEntryKind(directoryEntry, absoluteEntryPath, result, relativeEntryPath)
		if !resolveOk {
			continue
		}

		if isDirectory {
			if !directoryEntry.IsDir() {
				// Symlinked directory: never followed, so cycles are impossible.
				continue
			}
			childNode, childPending := directoryWalker.walkSubdirectory(absoluteEntryPath, relativeEntryPath, entryName, result)
			if childNode != nil {
				childNodes = append(childNodes, childNode)
			}
			pendingFiles = append(pendingFiles, childPending...)
			continue
		}
		if !isRegularTarget {
			continue
		}

		decision := directoryWalker.policy.Decide(relativeEntryPath, false)
		if decision == selection.FullyExcluded {
			continue
		}
		childNodes = append(childNodes, &types.TreeNode{
			Name:         entryName,
			RelativePath: relativeEntryPath,
			Type:         types.NodeTypeFile,
		})
		if decision == selection.ContentIncluded {
			pendingFiles = append(pendingFiles, pendingFile{
				relativePath: relativeEntryPath,
				absolutePath: absoluteEntryPath,
			})
		}
	}

	return childNodes, pendingFiles
}

// walkSubdirectory applies the pruning rules to one directory entry and
// recurses when the subtree survives. Directories left empty after filtering
// are elided from the tree.
func (directoryWalker *Walker) walkSubdirectory(absoluteEntryPath string, relativeEntryPath string, entryName string, result *Result) (*types.TreeNode, []pendingFile) {
	decision := directoryWalker.policy.Decide(relativeEntryPath, true)
	if decision == selection.FullyExcluded {
		return nil, nil
	}

	childNodes, childPending := directoryWalker.walkDirectory(absoluteEntryPath, relativeEntryPath, result)
	if len(childNodes) == 0 {
		return nil, childPending
	}

	return &types.TreeNode{
		Name:         entryName,
		RelativePath: relativeEntryPath,
		Type:         types.NodeTypeDirectory,
		Children:     childNodes,
	}, childPending
}

// resolveEntryKind determines whether a directory entry should be treated as
// a directory, a regular file, or skipped. Symlinks are resolved through to
// their target; a symlink to a directory is never followed, a symlink to a
// file is treated as a regular file.
func resolveEntryKind(directoryEntry fs.DirEntry, absoluteEntryPath string, result *Result, relativeEntryPath string) (isDirectory bool, isRegularTarget bool, ok bool) {
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		if directoryEntry.IsDir() {
			return true, false, true
		}
		return false, directoryEntry.Type().IsRegular(), true
	}

	targetInfo, statError := os.Stat(absoluteEntryPath)
	if statError != nil {
		result.Warnings = append(result.Warnings, types.Warning{
			Kind:   types.WarningKindFileRead,
			Path:   relativeEntryPath,
			Detail: warningStatDetail,
		})
		return false, false, false
	}
	if targetInfo.IsDir() {
		return true, false, true
	}
	return false, targetInfo.Mode().IsRegular(), true
}

// readPendingFiles performs the read phase. Reads run in a bounded errgroup
// with results written into pre-assigned slots, so concurrency never disturbs
// the deterministic traversal order. Unreadable and binary files are dropped
// with a warning.
func (directoryWalker *Walker) readPendingFiles(pendingFiles []pendingFile, result *Result) []types.FileNode {
	if len(pendingFiles) == 0 {
		return nil
	}

	fileSlots := make([]*types.FileNode, len(pendingFiles))
	var warningMutex sync.Mutex
	appendWarning := func(readWarning types.Warning) {
		warningMutex.Lock()
		defer warningMutex.Unlock()
		result.Warnings = append(result.Warnings, readWarning)
	}

	var readGroup errgroup.Group
	readGroup.SetLimit(runtime.NumCPU())
	for slotIndex, queuedFile := range pendingFiles {
		slotIndex, queuedFile := slotIndex, queuedFile
		readGroup.Go(func() error {
			fileBytes, readError := os.ReadFile(queuedFile.absolutePath)
			if readError != nil {
				appendWarning(types.Warning{
					Kind:   types.WarningKindFileRead,
					Path:   queuedFile.relativePath,
					Detail: readError.Error(),
				})
				return nil
			}
			if utils.ClassifyFileContent(queuedFile.relativePath, fileBytes) == utils.ContentClassBinary {
				appendWarning(types.Warning{
					Kind:   types.WarningKindFileRead,
					Path:   queuedFile.relativePath,
					Detail: warningBinaryContentDetail,
				})
				return nil
			}
			fileSlots[slotIndex] = &types.FileNode{
				RelativePath: queuedFile.relativePath,
				AbsolutePath: queuedFile.absolutePath,
				Language:     utils.LanguageTag(queuedFile.relativePath),
				Content:      string(fileBytes),
			}
			return nil
		})
	}
	// Read goroutines only record warnings; they never return errors.
	_ = readGroup.Wait()

	var fileNodes []types.FileNode
	for _, fileSlot := range fileSlots {
		if fileSlot != nil {
			fileNodes = append(fileNodes, *fileSlot)
		}
	}
	return fileNodes
}
