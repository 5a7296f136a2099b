// Package commands contains the traversal logic behind the directory tree and the file aggregate.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/codecollect/internal/types"
)

const (
	rootRelativePath = "."

	// errorReadDirectoryFormat is used when the root directory cannot be listed.
	errorReadDirectoryFormat = "reading directory %s: %w"
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorRootMissingFormat reports a root that is absent or not a directory.
	errorRootMissingFormat = "directory '%s' does not exist"

	warningSkipSubdirMessage = "skipping unreadable directory"
	warningStatPathMessage   = "unable to stat entry"
)

// ErrRootDirectoryMissing is matched by errors.Is when the traversal root is absent or not a directory.
var ErrRootDirectoryMissing = errors.New("root directory does not exist")

type rootDirectoryError struct {
	path string
}

func (rootError rootDirectoryError) Error() string {
	return fmt.Sprintf(errorRootMissingFormat, rootError.path)
}

func (rootError rootDirectoryError) Unwrap() error {
	return ErrRootDirectoryMissing
}

// ResolveRootDirectory returns the absolute form of rootDirectoryPath after
// checking that it names an existing directory.
func ResolveRootDirectory(rootDirectoryPath string) (string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}
	rootInfo, statError := os.Stat(absoluteRootPath)
	if statError != nil || !rootInfo.IsDir() {
		return "", rootDirectoryError{path: rootDirectoryPath}
	}
	return absoluteRootPath, nil
}

// directoryListing describes one visited directory. FileNames are sorted and
// never include directories or symlinks to directories.
type directoryListing struct {
	AbsolutePath string
	RelativePath string
	Name         string
	Depth        int
	FileNames    []string
}

// joinRelative appends name to a root-relative, slash-separated directory path.
func (listing directoryListing) joinRelative(name string) string {
	if listing.RelativePath == rootRelativePath {
		return name
	}
	return path.Join(listing.RelativePath, name)
}

// directoryWalker performs a depth-first, top-down walk that reports a
// directory's files before descending into its subdirectories, in name order.
// The root itself is never pruned.
type directoryWalker struct {
	excludeDirectories types.StringSet
	ignoreMatcher      types.PathMatcher
	logger             *zap.Logger
}

func (walker directoryWalker) walk(absoluteRootPath string, visit func(directoryListing)) error {
	return walker.visitDirectory(absoluteRootPath, rootRelativePath, 0, visit)
}

func (walker directoryWalker) visitDirectory(absolutePath string, relativePath string, depth int, visit func(directoryListing)) error {
	directoryEntries, readDirectoryError := os.ReadDir(absolutePath)
	if readDirectoryError != nil {
		if depth == 0 {
			return fmt.Errorf(errorReadDirectoryFormat, absolutePath, readDirectoryError)
		}
		walker.logger.Warn(warningSkipSubdirMessage, zap.String("path", relativePath), zap.Error(readDirectoryError))
		return nil
	}

	listing := directoryListing{
		AbsolutePath: absolutePath,
		RelativePath: relativePath,
		Name:         filepath.Base(absolutePath),
		Depth:        depth,
	}
	var subdirectoryNames []string
	for _, directoryEntry := range directoryEntries {
		switch walker.classify(absolutePath, directoryEntry) {
		case entryKindDirectory:
			subdirectoryNames = append(subdirectoryNames, directoryEntry.Name())
		case entryKindFile:
			listing.FileNames = append(listing.FileNames, directoryEntry.Name())
		}
	}

	visit(listing)

	for _, subdirectoryName := range subdirectoryNames {
		subdirectoryRelativePath := listing.joinRelative(subdirectoryName)
		if walker.excludeDirectories.Contains(subdirectoryName) {
			continue
		}
		if walker.ignoreMatcher != nil && walker.ignoreMatcher.MatchesPath(subdirectoryRelativePath+"/") {
			continue
		}
		subdirectoryPath := filepath.Join(absolutePath, subdirectoryName)
		if visitError := walker.visitDirectory(subdirectoryPath, subdirectoryRelativePath, depth+1, visit); visitError != nil {
			return visitError
		}
	}
	return nil
}

type entryKind int

const (
	entryKindFile entryKind = iota
	entryKindDirectory
	entryKindSkipped
)

// classify sorts an entry into a file or a directory to descend into.
// Symlinks to directories are neither listed nor followed; broken symlinks are files.
func (walker directoryWalker) classify(parentPath string, directoryEntry fs.DirEntry) entryKind {
	if directoryEntry.IsDir() {
		return entryKindDirectory
	}
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return entryKindFile
	}
	targetInfo, statError := os.Stat(filepath.Join(parentPath, directoryEntry.Name()))
	if statError != nil {
		walker.logger.Debug(warningStatPathMessage, zap.String("name", directoryEntry.Name()), zap.Error(statError))
		return entryKindFile
	}
	if targetInfo.IsDir() {
		return entryKindSkipped
	}
	return entryKindFile
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
