// Package git obtains diff and log text from the git executable for inclusion
// in generated prompts.
package git

import (
	"fmt"
	"os/exec"
	"strings"
)

const (
	gitExecutableName = "git"
	branchPairLength  = 2
	// errorBranchPairFormat reports a malformed branch pair argument.
	errorBranchPairFormat = "expected exactly two branch names separated by a comma, got %q"
	// errorGitCommandFormat reports a failed git invocation.
	errorGitCommandFormat = "git %s: %w"
)

// TextSource runs git inside a fixed working directory and returns its output
// verbatim. Failures are reported to the caller, which surfaces them as
// warnings; a prompt is still produced without git text.
type TextSource struct {
	WorkingDirectory string
}

// StagedDiff returns the diff of staged changes.
func (source TextSource) StagedDiff() (string, error) {
	return source.run("diff", "--staged")
}

// BranchDiff returns the diff between the two branches of a comma-separated
// pair such as "main,feature".
func (source TextSource) BranchDiff(branchPair string) (string, error) {
	firstBranch, secondBranch, parseError := splitBranchPair(branchPair)
	if parseError != nil {
		return "", parseError
	}
	return source.run("diff", firstBranch, secondBranch)
}

// BranchLog returns the log between the two branches of a comma-separated
// pair such as "main,feature".
func (source TextSource) BranchLog(branchPair string) (string, error) {
	firstBranch, secondBranch, parseError := splitBranchPair(branchPair)
	if parseError != nil {
		return "", parseError
	}
	return source.run("log", firstBranch+".."+secondBranch)
}

// run executes git with the provided arguments in the working directory.
func (source TextSource) run(gitArguments ...string) (string, error) {
	commandArguments := append([]string{"-C", source.WorkingDirectory}, gitArguments...)
	gitCommand := exec.Command(gitExecutableName, commandArguments...)
	commandOutput, commandError := gitCommand.Output()
	if commandError != nil {
		return "", fmt.Errorf(errorGitCommandFormat, strings.Join(gitArguments, " "), commandError)
	}
	return string(commandOutput), nil
}

// splitBranchPair parses "branch1,branch2" into its two trimmed components.
func splitBranchPair(branchPair string) (string, string, error) {
	branchNames := strings.Split(branchPair, ",")
	if len(branchNames) != branchPairLength {
		return "", "", fmt.Errorf(errorBranchPairFormat, branchPair)
	}
	firstBranch := strings.TrimSpace(branchNames[0])
	secondBranch := strings.TrimSpace(branchNames[1])
	if firstBranch == "" || secondBranch == "" {
		return "", "", fmt.Errorf(errorBranchPairFormat, branchPair)
	}
	return firstBranch, secondBranch, nil
}
