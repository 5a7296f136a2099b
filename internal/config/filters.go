// Package config resolves filter sets, loads configuration files, and compiles ignore rules.
package config

import (
	"path/filepath"
	"strings"

	"github.com/temirov/codecollect/internal/types"
	"github.com/temirov/codecollect/internal/utils"
)

const setArgumentSeparator = ","

// FilterInput carries the raw, unnormalized filter values gathered from flags
// and configuration files. Every element may itself hold a comma-separated list.
type FilterInput struct {
	IncludeFiles       []string
	Extensions         []string
	ExcludeDirectories []string
	ExcludeExtensions  []string
	ExcludeFiles       []string
	// OutputFileName is added to the excluded files when the file sink is used.
	OutputFileName string
}

// FilterDefaults are the fallback sets applied when the corresponding input is empty.
type FilterDefaults struct {
	IncludeExtensions  types.StringSet
	ExcludeDirectories types.StringSet
	ExcludeFiles       types.StringSet
}

// ParseSetArgument splits every raw value on commas and returns the trimmed,
// non-empty, de-duplicated entries.
func ParseSetArgument(rawValues ...string) types.StringSet {
	parsed := types.NewStringSet()
	for _, rawValue := range rawValues {
		for _, item := range strings.Split(rawValue, setArgumentSeparator) {
			trimmedItem := strings.TrimSpace(item)
			if trimmedItem == "" {
				continue
			}
			parsed[trimmedItem] = struct{}{}
		}
	}
	return parsed
}

// ResolveFilterConfiguration merges user input with defaults.
// Extensions and excluded directories fall back to their defaults only when the
// input is empty. Excluded files always include the default deny-list.
// Include paths have no default and are cleaned to slash-separated form.
func ResolveFilterConfiguration(input FilterInput, defaults FilterDefaults) types.FilterConfiguration {
	includeExtensions := ParseSetArgument(input.Extensions...)
	if len(includeExtensions) == 0 {
		includeExtensions = defaults.IncludeExtensions.Clone()
	}

	excludeDirectories := ParseSetArgument(input.ExcludeDirectories...)
	if len(excludeDirectories) == 0 {
		excludeDirectories = defaults.ExcludeDirectories.Clone()
	}

	excludeFiles := defaults.ExcludeFiles.Union(ParseSetArgument(input.ExcludeFiles...))
	if outputFileName := strings.TrimSpace(input.OutputFileName); outputFileName != "" {
		excludeFiles[filepath.Base(outputFileName)] = struct{}{}
	}

	includePaths := types.NewStringSet()
	for includePath := range ParseSetArgument(input.IncludeFiles...) {
		includePaths[normalizeIncludePath(includePath)] = struct{}{}
	}

	return types.FilterConfiguration{
		IncludeExtensions:  includeExtensions,
		ExcludeExtensions:  ParseSetArgument(input.ExcludeExtensions...),
		ExcludeDirectories: excludeDirectories,
		ExcludeFiles:       excludeFiles,
		IncludePaths:       includePaths,
	}
}

func normalizeIncludePath(includePath string) string {
	return strings.Join(utils.PathSegments(includePath), "/")
}
