// Package utils contains general helper functions used across the codecollect tool.
package utils

import (
	"path/filepath"
	"strings"
)

// File and directory names used across the project.
const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// LocalConfigFileName is the per-project configuration file looked up in the working directory.
	LocalConfigFileName = ".codecollect.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding the global configuration.
	GlobalConfigDirectoryName = ".codecollect"
	// GlobalConfigFileName is the name of the global configuration file.
	GlobalConfigFileName = "config.yaml"
)

// Log messages shared by the entry point.
const (
	// LoggerInitializationFailedMessageFormat reports a failure to build the zap logger.
	LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
	// ApplicationExecutionFailedMessage prefixes fatal errors returned by the CLI.
	ApplicationExecutionFailedMessage = "Error"
)

const (
	pathSegmentSeparator = "/"
	currentDirectoryPath = "."
	extensionSeparator   = '.'
)

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// PathSegments splits a relative path into its slash-separated segments.
// The current directory yields no segments.
func PathSegments(relativePath string) []string {
	normalizedPath := strings.ReplaceAll(filepath.ToSlash(filepath.Clean(relativePath)), "\\", pathSegmentSeparator)
	if normalizedPath == currentDirectoryPath || normalizedPath == "" {
		return nil
	}
	return strings.Split(normalizedPath, pathSegmentSeparator)
}

// FileExtension returns the extension of fileName including its leading dot.
// Leading dots do not start an extension, so ".gitignore" and "Makefile" both
// have an empty extension while "archive.tar.gz" has ".gz".
func FileExtension(fileName string) string {
	baseName := filepath.Base(fileName)
	separatorIndex := strings.LastIndexByte(baseName, extensionSeparator)
	if separatorIndex <= 0 {
		return ""
	}
	if strings.TrimLeft(baseName[:separatorIndex], string(extensionSeparator)) == "" {
		return ""
	}
	return baseName[separatorIndex:]
}
