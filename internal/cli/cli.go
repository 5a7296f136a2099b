// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codecollect/internal/services/clipboard"
	"github.com/temirov/codecollect/internal/tokenizer"
	"github.com/temirov/codecollect/internal/utils"
)

const (
	directoryFlagName         = "directory"
	directoryFlagShorthand    = "d"
	outputFileFlagName        = "output-file"
	outputFileFlagShorthand   = "o"
	clipboardFlagName         = "clipboard"
	clipboardFlagShorthand    = "c"
	includeFilesFlagName      = "include-files"
	includeFilesFlagShorthand = "i"
	extensionsFlagName        = "extensions"
	extensionsFlagShorthand   = "x"
	excludeDirsFlagName       = "exclude-dirs"
	excludeDirsFlagShorthand  = "e"
	excludeExtsFlagName       = "exclude-extensions"
	excludeExtsFlagShorthand  = "X"
	excludeFilesFlagName      = "exclude-files"
	excludeFilesFlagShorthand = "F"
	gitignoreFlagName         = "gitignore"
	tokensFlagName            = "tokens"
	modelFlagName             = "model"
	configFlagName            = "config"
	versionFlagName           = "version"

	directoryFlagDescription    = "root directory to scan (default: current working directory)"
	outputFileFlagDescription   = "output file path"
	clipboardFlagDescription    = "copy the result to the clipboard instead of writing a file"
	includeFilesFlagDescription = "comma-separated paths, relative to the working directory, to restrict the aggregate to"
	extensionsFlagDescription   = "comma-separated extensions to include (default: built-in set)"
	excludeDirsFlagDescription  = "comma-separated directory names to exclude (default: built-in set)"
	excludeExtsFlagDescription  = "comma-separated extensions to exclude"
	excludeFilesFlagDescription = "comma-separated file names to exclude in addition to the built-in list"
	gitignoreFlagDescription    = "skip paths matched by .gitignore files under the root"
	tokensFlagDescription       = "estimate the token count of the result"
	modelFlagDescription        = "tokenizer model to use for token counting"
	configFlagDescription       = "configuration file to use instead of ./" + utils.LocalConfigFileName
	versionFlagDescription      = "display application version"

	versionTemplate      = "codecollect version: %s\n"
	rootUse              = "codecollect"
	rootShortDescription = "flatten a source tree into one text file"
	rootLongDescription  = `codecollect walks a directory, renders its tree, and concatenates the
contents of the selected files into a single artifact.
Files are selected by extension and filtered by excluded directories, excluded
extensions, excluded file names, and an optional explicit path list. Exclusion
always wins over inclusion. The artifact is written to a file or, with
--clipboard, copied to the system clipboard.`
	rootUsageExample = `  # Collect the current directory into full_code.txt
  codecollect

  # Collect only Go and Markdown files from ./service and copy them
  codecollect -d ./service -x .go,.md --clipboard

  # Restrict the aggregate to two files and report a token estimate
  codecollect -i main.go,internal/cli/cli.go --tokens`

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

// CounterFactory builds the token counter used by --tokens.
type CounterFactory func(configuration tokenizer.Config) (tokenizer.Counter, string, error)

// Dependencies carries the collaborators a run needs. Zero values fall back to
// the process defaults.
type Dependencies struct {
	Logger           *zap.Logger
	Copier           clipboard.Copier
	CounterFactory   CounterFactory
	WorkingDirectory string
	VersionOutput    io.Writer
}

func (dependencies Dependencies) withDefaults() (Dependencies, error) {
	resolved := dependencies
	if resolved.Logger == nil {
		resolved.Logger = zap.NewNop()
	}
	if resolved.Copier == nil {
		resolved.Copier = clipboard.NewService()
	}
	if resolved.CounterFactory == nil {
		resolved.CounterFactory = tokenizer.NewCounter
	}
	if resolved.WorkingDirectory == "" {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return Dependencies{}, fmt.Errorf(workingDirectoryErrorFormat, err)
		}
		resolved.WorkingDirectory = workingDirectory
	}
	if resolved.VersionOutput == nil {
		resolved.VersionOutput = os.Stdout
	}
	return resolved, nil
}

// Execute runs the codecollect application with the process arguments.
func Execute(logger *zap.Logger) error {
	return ExecuteWithArguments(Dependencies{Logger: logger}, os.Args[1:])
}

// ExecuteWithArguments runs the application against explicit arguments.
func ExecuteWithArguments(dependencies Dependencies, arguments []string) error {
	resolvedDependencies, err := dependencies.withDefaults()
	if err != nil {
		return err
	}
	rootCommand := createRootCommand(resolvedDependencies)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	var flagValues collectFlagValues
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, printErr := fmt.Fprintf(dependencies.VersionOutput, versionTemplate, utils.GetApplicationVersion())
				return printErr
			}
			configuration, loadErr := loadConfiguration(dependencies.WorkingDirectory, flagValues.configPath, dependencies.Logger)
			if loadErr != nil {
				return loadErr
			}
			options := resolveCollectOptions(command, flagValues, configuration, dependencies.WorkingDirectory)
			return runCollect(options, dependencies)
		},
	}
	registerCollectFlags(rootCommand, &flagValues)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}
