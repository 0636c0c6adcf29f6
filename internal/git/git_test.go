package git

import (
	"os/exec"
	"strings"
	"testing"
)

// initTestRepository creates a git repository with one staged change, skipping
// the test when git is unavailable.
func initTestRepository(testingHandle *testing.T) string {
	testingHandle.Helper()
	if _, lookError := exec.LookPath("git"); lookError != nil {
		testingHandle.Skipf("git executable unavailable: %v", lookError)
	}
	repositoryDirectory := testingHandle.TempDir()

	runGitCommand := func(gitArguments ...string) {
		gitCommand := exec.Command("git", append([]string{"-C", repositoryDirectory}, gitArguments...)...)
		gitCommand.Env = append(gitCommand.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		if commandOutput, commandError := gitCommand.CombinedOutput(); commandError != nil {
			testingHandle.Fatalf("git %v failed: %v\n%s", gitArguments, commandError, commandOutput)
		}
	}

	runGitCommand("init")
	runGitCommand("commit", "--allow-empty", "-m", "initial commit")
	return repositoryDirectory
}

// TestStagedDiffIncludesStagedFile verifies the staged diff surface.
func TestStagedDiffIncludesStagedFile(testingHandle *testing.T) {
	repositoryDirectory := initTestRepository(testingHandle)

	stageFile := exec.Command("git", "-C", repositoryDirectory, "add", "-A")
	writeCommand := exec.Command("sh", "-c", "echo 'print(1)' > "+repositoryDirectory+"/staged.py")
	if writeError := writeCommand.Run(); writeError != nil {
		testingHandle.Fatalf("failed to write file: %v", writeError)
	}
	if stageError := stageFile.Run(); stageError != nil {
		testingHandle.Fatalf("failed to stage file: %v", stageError)
	}

	diffText, diffError := TextSource{WorkingDirectory: repositoryDirectory}.StagedDiff()
	if diffError != nil {
		testingHandle.Fatalf("StagedDiff failed: %v", diffError)
	}
	if !strings.Contains(diffText, "staged.py") {
		testingHandle.Fatalf("expected staged.py in diff output, got %q", diffText)
	}
}

// TestBranchDiffRejectsMalformedPair verifies branch pair validation.
func TestBranchDiffRejectsMalformedPair(testingHandle *testing.T) {
	textSource := TextSource{WorkingDirectory: "."}

	malformedPairs := []string{"", "only-one", "a,b,c", " , "}
	for _, malformedPair := range malformedPairs {
		if _, diffError := textSource.BranchDiff(malformedPair); diffError == nil {
			testingHandle.Fatalf("expected an error for branch pair %q", malformedPair)
		}
	}
}

// TestBranchLogRejectsMalformedPair verifies the same validation on the log path.
func TestBranchLogRejectsMalformedPair(testingHandle *testing.T) {
	if _, logError := (TextSource{WorkingDirectory: "."}).BranchLog("solo"); logError == nil {
		testingHandle.Fatalf("expected an error for a malformed branch pair")
	}
}
