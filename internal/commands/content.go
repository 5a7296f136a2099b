package commands

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/codecollect/internal/types"
	"github.com/temirov/codecollect/internal/utils"
)

const warningReadFileMessage = "unable to read file"

// FileReader loads the bytes of a file. os.ReadFile satisfies it.
type FileReader func(path string) ([]byte, error)

// Aggregator selects files below a root directory and reads their contents.
type Aggregator struct {
	Filters types.FilterConfiguration
	// WorkingDirectory anchors include paths. Empty means the process working directory.
	WorkingDirectory string
	Logger           *zap.Logger
	ReadFile         FileReader
}

// NewAggregator configures an Aggregator from resolved filters.
func NewAggregator(filters types.FilterConfiguration, workingDirectory string, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		Filters:          filters,
		WorkingDirectory: workingDirectory,
		Logger:           logger,
		ReadFile:         os.ReadFile,
	}
}

// GetContentData walks rootDirectoryPath and returns every file passing the
// filter chain in traversal order. A file that cannot be read or decoded is
// still returned, with ReadError set, and the walk continues.
func (aggregator *Aggregator) GetContentData(rootDirectoryPath string) ([]types.FileEntry, error) {
	absoluteRootPath, rootError := ResolveRootDirectory(rootDirectoryPath)
	if rootError != nil {
		return nil, rootError
	}
	workingDirectory, workingDirectoryError := aggregator.resolveWorkingDirectory()
	if workingDirectoryError != nil {
		return nil, workingDirectoryError
	}
	logger := loggerOrNop(aggregator.Logger)
	readFile := aggregator.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	walker := directoryWalker{
		excludeDirectories: aggregator.Filters.ExcludeDirectories,
		ignoreMatcher:      aggregator.Filters.IgnoreMatcher,
		logger:             logger,
	}
	var fileEntries []types.FileEntry
	walkError := walker.walk(absoluteRootPath, func(listing directoryListing) {
		if containsExcludedSegment(utils.PathSegments(listing.RelativePath), aggregator.Filters.ExcludeDirectories) {
			return
		}
		for _, fileName := range listing.FileNames {
			relativePath := listing.joinRelative(fileName)
			absolutePath := filepath.Join(listing.AbsolutePath, fileName)
			if !aggregator.accepts(relativePath, absolutePath, workingDirectory) {
				continue
			}
			fileEntries = append(fileEntries, readFileEntry(readFile, relativePath, absolutePath, logger))
		}
	})
	if walkError != nil {
		return nil, walkError
	}
	return fileEntries, nil
}

func (aggregator *Aggregator) resolveWorkingDirectory() (string, error) {
	if aggregator.WorkingDirectory != "" {
		return filepath.Abs(aggregator.WorkingDirectory)
	}
	return os.Getwd()
}

// accepts applies the full per-file filter chain: exclusion, ignore rules,
// extension, and the explicit include set.
func (aggregator *Aggregator) accepts(relativePath string, absolutePath string, workingDirectory string) bool {
	filters := aggregator.Filters
	if IsExcludedPath(relativePath, filters.ExcludeDirectories, filters.ExcludeFiles) {
		return false
	}
	if filters.IgnoreMatcher != nil && filters.IgnoreMatcher.MatchesPath(relativePath) {
		return false
	}
	if !HasSelectedExtension(relativePath, filters.IncludeExtensions, filters.ExcludeExtensions) {
		return false
	}
	return IsExplicitlyIncluded(workingRelativePath(absolutePath, workingDirectory), filters.IncludePaths)
}

// IsExcludedPath reports whether the file's base name is an excluded file or
// any of its parent segments is an excluded directory.
func IsExcludedPath(relativePath string, excludeDirectories types.StringSet, excludeFiles types.StringSet) bool {
	pathSegments := utils.PathSegments(relativePath)
	if len(pathSegments) == 0 {
		return false
	}
	if excludeFiles.Contains(pathSegments[len(pathSegments)-1]) {
		return true
	}
	return containsExcludedSegment(pathSegments[:len(pathSegments)-1], excludeDirectories)
}

// HasSelectedExtension reports whether the lower-cased extension of fileName is
// included and not excluded. Set entries are compared as given.
func HasSelectedExtension(fileName string, includeExtensions types.StringSet, excludeExtensions types.StringSet) bool {
	fileExtension := utils.FileExtension(strings.ToLower(fileName))
	return includeExtensions.Contains(fileExtension) && !excludeExtensions.Contains(fileExtension)
}

// IsExplicitlyIncluded reports whether a working-directory relative path passes
// the include set. An empty include set admits every path.
func IsExplicitlyIncluded(workingRelativePath string, includePaths types.StringSet) bool {
	return len(includePaths) == 0 || includePaths.Contains(workingRelativePath)
}

func containsExcludedSegment(pathSegments []string, excludeDirectories types.StringSet) bool {
	for _, pathSegment := range pathSegments {
		if excludeDirectories.Contains(pathSegment) {
			return true
		}
	}
	return false
}

func workingRelativePath(absolutePath string, workingDirectory string) string {
	relativePath, relativeError := filepath.Rel(workingDirectory, absolutePath)
	if relativeError != nil {
		return filepath.ToSlash(absolutePath)
	}
	return filepath.ToSlash(relativePath)
}

func readFileEntry(readFile FileReader, relativePath string, absolutePath string, logger *zap.Logger) types.FileEntry {
	fileEntry := types.FileEntry{RelativePath: relativePath}
	fileBytes, readError := readFile(absolutePath)
	if readError == nil {
		fileEntry.SizeBytes = int64(len(fileBytes))
		fileEntry.Content, readError = utils.DecodeText(fileBytes)
	}
	if readError != nil {
		logger.Warn(warningReadFileMessage, zap.String("path", relativePath), zap.Error(readError))
		fileEntry.Content = ""
		fileEntry.ReadError = readError
	}
	return fileEntry
}
