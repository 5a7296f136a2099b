package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codecollect/internal/config"
)

// collectFlagValues receives the raw flag values of the root command.
type collectFlagValues struct {
	directory         string
	outputFile        string
	clipboard         bool
	includeFiles      []string
	extensions        []string
	excludeDirs       []string
	excludeExtensions []string
	excludeFiles      []string
	useGitignore      bool
	tokensEnabled     bool
	tokenizerModel    string
	configPath        string
}

// collectOptions is the fully resolved input of one run.
type collectOptions struct {
	rootDirectory  string
	outputFilePath string
	useClipboard   bool
	filterInput    config.FilterInput
	useGitignore   bool
	tokensEnabled  bool
	tokenizerModel string
}

func registerCollectFlags(command *cobra.Command, values *collectFlagValues) {
	flagSet := command.Flags()
	flagSet.StringVarP(&values.directory, directoryFlagName, directoryFlagShorthand, "", directoryFlagDescription)
	flagSet.StringVarP(&values.outputFile, outputFileFlagName, outputFileFlagShorthand, config.DefaultOutputFileName, outputFileFlagDescription)
	registerBooleanFlag(flagSet, &values.clipboard, clipboardFlagName, clipboardFlagShorthand, false, clipboardFlagDescription)
	flagSet.StringArrayVarP(&values.includeFiles, includeFilesFlagName, includeFilesFlagShorthand, nil, includeFilesFlagDescription)
	flagSet.StringArrayVarP(&values.extensions, extensionsFlagName, extensionsFlagShorthand, nil, extensionsFlagDescription)
	flagSet.StringArrayVarP(&values.excludeDirs, excludeDirsFlagName, excludeDirsFlagShorthand, nil, excludeDirsFlagDescription)
	flagSet.StringArrayVarP(&values.excludeExtensions, excludeExtsFlagName, excludeExtsFlagShorthand, nil, excludeExtsFlagDescription)
	flagSet.StringArrayVarP(&values.excludeFiles, excludeFilesFlagName, excludeFilesFlagShorthand, nil, excludeFilesFlagDescription)
	registerBooleanFlag(flagSet, &values.useGitignore, gitignoreFlagName, "", false, gitignoreFlagDescription)
	registerBooleanFlag(flagSet, &values.tokensEnabled, tokensFlagName, "", false, tokensFlagDescription)
	flagSet.StringVar(&values.tokenizerModel, modelFlagName, config.DefaultTokenizerModel, modelFlagDescription)
	flagSet.StringVar(&values.configPath, configFlagName, "", configFlagDescription)
}

func loadConfiguration(workingDirectory string, explicitPath string, logger *zap.Logger) (config.ApplicationConfiguration, error) {
	return config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: strings.TrimSpace(explicitPath),
		Logger:           logger,
	})
}

// resolveCollectOptions layers flag defaults, then configuration values, then
// flags the user set explicitly.
func resolveCollectOptions(command *cobra.Command, values collectFlagValues, configuration config.ApplicationConfiguration, workingDirectory string) collectOptions {
	flagSet := command.Flags()
	explicit := func(name string) bool {
		return flagSet.Changed(name)
	}

	directory := values.directory
	if !explicit(directoryFlagName) && configuration.Directory != "" {
		directory = configuration.Directory
	}
	outputFile := values.outputFile
	if !explicit(outputFileFlagName) && configuration.OutputFile != "" {
		outputFile = configuration.OutputFile
	}
	if strings.TrimSpace(outputFile) == "" {
		outputFile = config.DefaultOutputFileName
	}
	useClipboard := resolveBool(explicit(clipboardFlagName), values.clipboard, configuration.Clipboard)
	useGitignore := resolveBool(explicit(gitignoreFlagName), values.useGitignore, configuration.UseGitignore)
	tokensEnabled := resolveBool(explicit(tokensFlagName), values.tokensEnabled, configuration.Tokens.Enabled)
	tokenizerModel := values.tokenizerModel
	if !explicit(modelFlagName) && configuration.Tokens.Model != "" {
		tokenizerModel = configuration.Tokens.Model
	}

	filterInput := config.FilterInput{
		IncludeFiles:       resolveList(explicit(includeFilesFlagName), values.includeFiles, configuration.IncludeFiles),
		Extensions:         resolveList(explicit(extensionsFlagName), values.extensions, configuration.Extensions),
		ExcludeDirectories: resolveList(explicit(excludeDirsFlagName), values.excludeDirs, configuration.ExcludeDirs),
		ExcludeExtensions:  resolveList(explicit(excludeExtsFlagName), values.excludeExtensions, configuration.ExcludeExtensions),
		ExcludeFiles:       resolveList(explicit(excludeFilesFlagName), values.excludeFiles, configuration.ExcludeFiles),
	}
	outputFilePath := resolveAgainst(workingDirectory, strings.TrimSpace(outputFile))
	if !useClipboard {
		filterInput.OutputFileName = outputFilePath
	}

	return collectOptions{
		rootDirectory:  resolveAgainst(workingDirectory, strings.TrimSpace(directory)),
		outputFilePath: outputFilePath,
		useClipboard:   useClipboard,
		filterInput:    filterInput,
		useGitignore:   useGitignore,
		tokensEnabled:  tokensEnabled,
		tokenizerModel: tokenizerModel,
	}
}

func resolveBool(explicit bool, flagValue bool, configured *bool) bool {
	if explicit || configured == nil {
		return flagValue
	}
	return *configured
}

func resolveList(explicit bool, flagValues []string, configured []string) []string {
	if explicit || len(configured) == 0 {
		return flagValues
	}
	return configured
}

// resolveAgainst anchors a relative path at workingDirectory. An empty path
// resolves to workingDirectory itself.
func resolveAgainst(workingDirectory string, path string) string {
	if path == "" {
		return workingDirectory
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workingDirectory, path)
}
