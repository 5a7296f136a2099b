package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/temirov/codecollect/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// Logger receives warnings about optional files that cannot be read. Nil discards them.
	Logger *zap.Logger
}

const warningUnreadableConfigMessage = "skipping unreadable configuration file"

// statConfigurationPath is replaced in tests that need a permission failure.
var statConfigurationPath = os.Stat

// ApplicationConfiguration holds defaults read from configuration files.
// Pointer fields distinguish "unset" from an explicit false.
type ApplicationConfiguration struct {
	Directory         string             `mapstructure:"directory"`
	OutputFile        string             `mapstructure:"output_file"`
	Clipboard         *bool              `mapstructure:"clipboard"`
	IncludeFiles      []string           `mapstructure:"include_files"`
	Extensions        []string           `mapstructure:"extensions"`
	ExcludeDirs       []string           `mapstructure:"exclude_dirs"`
	ExcludeExtensions []string           `mapstructure:"exclude_extensions"`
	ExcludeFiles      []string           `mapstructure:"exclude_files"`
	UseGitignore      *bool              `mapstructure:"use_gitignore"`
	Tokens            TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from the global file and then
// the local (or explicitly named) file, letting local values override global ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false, logger)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "", logger)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName)
}

// loadConfigurationFromPath reads one configuration file. A missing or
// unreadable file is only an error when required is set; an unreadable
// optional file is logged.
func loadConfigurationFromPath(path string, required bool, logger *zap.Logger) (ApplicationConfiguration, error) {
	info, statErr := statConfigurationPath(path)
	if statErr != nil {
		if !required && os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		if !required && errors.Is(statErr, fs.ErrPermission) {
			logger.Warn(warningUnreadableConfigMessage, zap.String("path", path), zap.Error(statErr))
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		if !required && errors.Is(readErr, fs.ErrPermission) {
			logger.Warn(warningUnreadableConfigMessage, zap.String("path", path), zap.Error(readErr))
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Directory != "" {
		result.Directory = override.Directory
	}
	if override.OutputFile != "" {
		result.OutputFile = override.OutputFile
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.IncludeFiles = mergeList(result.IncludeFiles, override.IncludeFiles)
	result.Extensions = mergeList(result.Extensions, override.Extensions)
	result.ExcludeDirs = mergeList(result.ExcludeDirs, override.ExcludeDirs)
	result.ExcludeExtensions = mergeList(result.ExcludeExtensions, override.ExcludeExtensions)
	result.ExcludeFiles = mergeList(result.ExcludeFiles, override.ExcludeFiles)
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// mergeList replaces current with a de-duplicated copy of override when override is non-empty.
func mergeList(current []string, override []string) []string {
	if len(override) == 0 {
		return current
	}
	return append([]string{}, utils.DeduplicatePatterns(override)...)
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
