package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/temirov/codecollect/internal/types"
	"github.com/temirov/codecollect/internal/utils"
)

const (
	negationPrefix        = "!"
	anchorPrefix          = "/"
	anyDepthPrefix        = "**/"
	commentPrefix         = "#"
	rootDirectoryName     = "."
	errorWalkIgnoreFormat = "collecting %s files under %s: %w"

	warningSkipIgnoreDirectoryMessage = "skipping unreadable directory while loading ignore rules"
	warningSkipIgnoreFileMessage      = "skipping unreadable ignore file"
)

// loadIgnoreFilePatterns reads the patterns of one ignore file inside fsys.
// A missing file yields no patterns and no error.
func loadIgnoreFilePatterns(fsys fs.FS, ignoreFileName string) ([]string, error) {
	fileHandle, openFileError := fsys.Open(ignoreFileName)
	if openFileError != nil {
		if errors.Is(openFileError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer fileHandle.Close()

	var patterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		patterns = append(patterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patterns, nil
}

// LoadGitignoreMatcher walks rootDirectoryPath and compiles the patterns of every
// .gitignore it finds into one matcher evaluated against root-relative paths.
// Patterns from a nested .gitignore are rebased onto that file's directory.
// Directories in excludedDirectories are not descended into. Unreadable
// subdirectories and ignore files are logged and skipped; only an unreadable
// root fails. When no patterns exist the returned matcher is nil.
func LoadGitignoreMatcher(rootDirectoryPath string, excludedDirectories types.StringSet, logger *zap.Logger) (types.PathMatcher, error) {
	matcher, loadError := loadGitignoreMatcherFromFS(os.DirFS(rootDirectoryPath), excludedDirectories, logger)
	if loadError != nil {
		return nil, fmt.Errorf(errorWalkIgnoreFormat, utils.GitIgnoreFileName, rootDirectoryPath, loadError)
	}
	return matcher, nil
}

func loadGitignoreMatcherFromFS(fsys fs.FS, excludedDirectories types.StringSet, logger *zap.Logger) (types.PathMatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var aggregatedPatterns []string

	walkFunction := func(relativeDirectory string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if relativeDirectory == rootDirectoryName {
				return walkError
			}
			logger.Warn(warningSkipIgnoreDirectoryMessage, zap.String("path", relativeDirectory), zap.Error(walkError))
			if directoryEntry != nil && directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if relativeDirectory != rootDirectoryName && excludedDirectories.Contains(directoryEntry.Name()) {
			return fs.SkipDir
		}

		ignoreFileName := path.Join(relativeDirectory, utils.GitIgnoreFileName)
		patterns, loadError := loadIgnoreFilePatterns(fsys, ignoreFileName)
		if loadError != nil {
			logger.Warn(warningSkipIgnoreFileMessage, zap.String("path", ignoreFileName), zap.Error(loadError))
			return nil
		}
		for _, pattern := range patterns {
			aggregatedPatterns = append(aggregatedPatterns, rebasePattern(relativeDirectory, pattern))
		}
		return nil
	}

	if walkError := fs.WalkDir(fsys, rootDirectoryName, walkFunction); walkError != nil {
		return nil, walkError
	}

	deduplicatedPatterns := utils.DeduplicatePatterns(aggregatedPatterns)
	if len(deduplicatedPatterns) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(deduplicatedPatterns...), nil
}

// rebasePattern rewrites a pattern declared in relativeDirectory so it applies
// to paths relative to the traversal root. The result is anchored at that directory.
func rebasePattern(relativeDirectory string, pattern string) string {
	if relativeDirectory == rootDirectoryName {
		return pattern
	}
	negation := ""
	if strings.HasPrefix(pattern, negationPrefix) {
		negation = negationPrefix
		pattern = strings.TrimPrefix(pattern, negationPrefix)
	}
	anchored := strings.Contains(strings.TrimSuffix(pattern, "/"), "/")
	pattern = strings.TrimPrefix(pattern, anchorPrefix)
	if !anchored {
		pattern = anyDepthPrefix + pattern
	}
	return negation + anchorPrefix + relativeDirectory + "/" + pattern
}
