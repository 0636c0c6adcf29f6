// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/codeprompt/internal/config"
	"github.com/temirov/codeprompt/internal/git"
	"github.com/temirov/codeprompt/internal/output"
	"github.com/temirov/codeprompt/internal/pattern"
	"github.com/temirov/codeprompt/internal/services/clipboard"
	"github.com/temirov/codeprompt/internal/template"
	"github.com/temirov/codeprompt/internal/tokenizer"
	"github.com/temirov/codeprompt/internal/tree"
	"github.com/temirov/codeprompt/internal/types"
	"github.com/temirov/codeprompt/internal/utils"
	"github.com/temirov/codeprompt/internal/walker"
)

const (
	rootUse              = "codeprompt <directory>"
	rootShortDescription = "generate an LLM prompt from a codebase directory"
	rootLongDescription  = `codeprompt walks a source tree, selects files by glob and ignore rules,
renders a directory tree plus file contents through a template, and reports a
token count estimate. The result prints to stdout and can also be written to a
file, emitted as JSON, or copied to the clipboard.`
	rootUsageExample = `  # Prompt for the current directory, Python files only
  codeprompt . --include '*.py'

  # Exclude docs from content but keep them visible in the tree
  codeprompt ./project --exclude '*.md'

  # Drop excluded files from the tree too, copy the result
  codeprompt ./project --exclude '*.md' --exclude-from-tree --copy`

	templateFlagName        = "template"
	includeFlagName         = "include"
	excludeFlagName         = "exclude"
	excludeFromTreeFlagName = "exclude-from-tree"
	noIgnoreFlagName        = "no-ignore"
	tokensFlagName          = "tokens"
	encodingFlagName        = "encoding"
	outputFlagName          = "output"
	jsonFlagName            = "json"
	diffFlagName            = "diff"
	gitDiffBranchFlagName   = "git-diff-branch"
	gitLogBranchFlagName    = "git-log-branch"
	lineNumberFlagName      = "line-number"
	noCodeblockFlagName     = "no-codeblock"
	copyFlagName            = "copy"
	versionFlagName         = "version"

	templateFlagDescription        = "path to a template file"
	includeFlagDescription         = "glob patterns to include, comma-separated"
	excludeFlagDescription         = "glob patterns to exclude, comma-separated"
	excludeFromTreeFlagDescription = "omit excluded files from the source tree as well"
	noIgnoreFlagDescription        = "do not respect .gitignore"
	tokensFlagDescription          = "display the token count of the generated prompt"
	encodingFlagDescription        = "tokenizer encoding for the token count"
	outputFlagDescription          = "save the generated prompt to a file"
	jsonFlagDescription            = "print output as JSON"
	diffFlagDescription            = "include staged git diff output in the prompt"
	gitDiffBranchFlagDescription   = "diff two branches, format: branch1,branch2"
	gitLogBranchFlagDescription    = "log between two branches, format: branch1,branch2"
	lineNumberFlagDescription      = "add line numbers to source code blocks"
	noCodeblockFlagDescription     = "disable wrapping code inside markdown code blocks"
	copyFlagDescription            = "copy the generated prompt to the clipboard"
	versionFlagDescription         = "display application version"

	versionTemplate          = "codeprompt version: %s\n"
	tokenCountTemplate       = "Total Tokens: %d\n"
	exportedTemplate         = "Exported to %s\n"
	copiedToClipboardMessage = "Content copied to clipboard."

	// warningGitTextDetail reports that git text could not be obtained.
	warningGitTextDetail = "git output unavailable"
	// warningClipboardDetailFormat reports a clipboard failure.
	warningClipboardDetailFormat = "copy to clipboard failed: %v"
)

// generateOptions collects every flag value of the root command.
type generateOptions struct {
	templatePath    string
	includeList     string
	excludeList     string
	excludeFromTree bool
	noIgnore        bool
	showTokens      bool
	encodingName    string
	outputPath      string
	jsonOutput      bool
	stagedDiff      bool
	gitDiffBranches string
	gitLogBranches  string
	lineNumbers     bool
	noCodeblock     bool
	copyToClipboard bool
}

// Execute runs the codeprompt application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command with the full flag surface.
func createRootCommand() *cobra.Command {
	var options generateOptions
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			if len(arguments) == 0 {
				return command.Help()
			}
			return runGenerate(command, arguments[0], options)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.templatePath, templateFlagName, "t", "", templateFlagDescription)
	flagSet.StringVar(&options.includeList, includeFlagName, "", includeFlagDescription)
	flagSet.StringVar(&options.excludeList, excludeFlagName, "", excludeFlagDescription)
	flagSet.BoolVar(&options.excludeFromTree, excludeFromTreeFlagName, false, excludeFromTreeFlagDescription)
	flagSet.BoolVar(&options.noIgnore, noIgnoreFlagName, false, noIgnoreFlagDescription)
	flagSet.BoolVar(&options.showTokens, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.encodingName, encodingFlagName, tokenizer.DefaultEncodingName, encodingFlagDescription)
	flagSet.StringVarP(&options.outputPath, outputFlagName, "o", "", outputFlagDescription)
	flagSet.BoolVar(&options.jsonOutput, jsonFlagName, false, jsonFlagDescription)
	flagSet.BoolVarP(&options.stagedDiff, diffFlagName, "d", false, diffFlagDescription)
	flagSet.StringVar(&options.gitDiffBranches, gitDiffBranchFlagName, "", gitDiffBranchFlagDescription)
	flagSet.StringVar(&options.gitLogBranches, gitLogBranchFlagName, "", gitLogBranchFlagDescription)
	flagSet.BoolVarP(&options.lineNumbers, lineNumberFlagName, "l", false, lineNumberFlagDescription)
	flagSet.BoolVar(&options.noCodeblock, noCodeblockFlagName, false, noCodeblockFlagDescription)
	flagSet.BoolVarP(&options.copyToClipboard, copyFlagName, "c", false, copyFlagDescription)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)

	return rootCommand
}

// runGenerate performs the full prompt generation pipeline for one directory.
func runGenerate(command *cobra.Command, directoryArgument string, options generateOptions) error {
	applicationConfiguration, applicationConfigurationError := config.LoadApplicationConfiguration("")
	if applicationConfigurationError != nil {
		return applicationConfigurationError
	}
	options = mergeApplicationConfiguration(command, options, applicationConfiguration)

	includePatterns := pattern.SplitList(options.includeList)
	excludePatterns := pattern.SplitList(options.excludeList)
	if len(includePatterns) == 0 {
		includePatterns = applicationConfiguration.Include
	}
	if len(excludePatterns) == 0 {
		excludePatterns = applicationConfiguration.Exclude
	}

	traversalConfiguration, configurationError := config.NewTraversalConfig(
		directoryArgument, includePatterns, excludePatterns, options.excludeFromTree, !options.noIgnore)
	if configurationError != nil {
		return configurationError
	}

	directoryWalker, walkerError := walker.New(traversalConfiguration)
	if walkerError != nil {
		return walkerError
	}
	walkResult := directoryWalker.Walk()
	warnings := walkResult.Warnings

	treeText := tree.Render(walkResult.Root)
	renderedFiles := output.FormatFiles(walkResult.Files, output.FormatOptions{
		LineNumbers: options.lineNumbers,
		CodeBlock:   !options.noCodeblock,
	})

	gitText, gitWarnings := collectGitText(traversalConfiguration.RootPath, options)
	warnings = append(warnings, gitWarnings...)

	tokenCounter, tokenizerWarnings, tokenizerError := tokenizer.NewCounter(options.encodingName)
	if tokenizerError != nil {
		return tokenizerError
	}
	warnings = append(warnings, tokenizerWarnings...)
	tokenCount, tokenCountError := tokenCounter.CountString(output.ConcatenateSections(renderedFiles))
	if tokenCountError != nil {
		return fmt.Errorf("counting tokens: %w", tokenCountError)
	}

	templateText, templateError := template.LoadTemplateText(options.templatePath)
	if templateError != nil {
		return templateError
	}
	prompt, renderError := template.Render(templateText, template.Context{
		DirectoryName: filepath.Base(traversalConfiguration.RootPath),
		Files:         renderedFiles,
		TreeText:      treeText,
		GitDiffOutput: gitText,
		TokenCount:    tokenCount,
	})
	if renderError != nil {
		return renderError
	}

	if options.copyToClipboard {
		if copyError := clipboard.NewService().Copy(prompt); copyError != nil {
			warnings = append(warnings, types.Warning{
				Kind:   types.WarningKindClipboard,
				Detail: fmt.Sprintf(warningClipboardDetailFormat, copyError),
			})
		} else {
			fmt.Fprintln(os.Stderr, copiedToClipboardMessage)
		}
	}

	output.PrintWarnings(os.Stderr, warnings)

	if options.jsonOutput {
		envelope := output.BuildEnvelope(prompt, filepath.Base(traversalConfiguration.RootPath), tokenCount, renderedFiles)
		encodedEnvelope, encodeError := output.RenderEnvelopeJSON(envelope)
		if encodeError != nil {
			return encodeError
		}
		fmt.Println(encodedEnvelope)
	} else {
		fmt.Println(prompt)
	}

	if options.outputPath != "" {
		if writeError := output.WriteToFile(options.outputPath, prompt); writeError != nil {
			return writeError
		}
		fmt.Fprintf(os.Stderr, exportedTemplate, options.outputPath)
	}

	if options.showTokens {
		fmt.Fprintf(os.Stderr, tokenCountTemplate, tokenCount)
	}

	return nil
}

// collectGitText gathers the requested git diff or log output. Failures are
// returned as warnings; prompt generation continues without git text.
func collectGitText(rootPath string, options generateOptions) (string, []types.Warning) {
	textSource := git.TextSource{WorkingDirectory: rootPath}

	var gitText string
	var gitError error
	switch {
	case options.gitDiffBranches != "":
		gitText, gitError = textSource.BranchDiff(options.gitDiffBranches)
	case options.gitLogBranches != "":
		gitText, gitError = textSource.BranchLog(options.gitLogBranches)
	case options.stagedDiff:
		gitText, gitError = textSource.StagedDiff()
	default:
		return "", nil
	}

	if gitError != nil {
		return "", []types.Warning{{
			Kind:   types.WarningKindGit,
			Detail: warningGitTextDetail + ": " + gitError.Error(),
		}}
	}
	return gitText, nil
}

// mergeApplicationConfiguration applies configuration-file defaults for flags
// the user did not set explicitly.
func mergeApplicationConfiguration(command *cobra.Command, options generateOptions, applicationConfiguration config.ApplicationConfiguration) generateOptions {
	if !command.Flags().Changed(encodingFlagName) && applicationConfiguration.Encoding != "" {
		options.encodingName = applicationConfiguration.Encoding
	}
	if !command.Flags().Changed(templateFlagName) && applicationConfiguration.Template != "" {
		options.templatePath = applicationConfiguration.Template
	}
	return options
}
