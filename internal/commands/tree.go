package commands

import (
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/codecollect/internal/types"
)

const (
	treeIndentUnit      = "│   "
	treeBranchMarker    = "├── "
	treeDirectorySuffix = "/"
	treeLineSeparator   = "\n"
)

// TreeBuilder renders the directory listing that precedes the aggregated files.
// Excluded directories are pruned together with their subtree and are not
// listed. Files are filtered by name only; extension rules do not apply here.
type TreeBuilder struct {
	ExcludeDirectories types.StringSet
	ExcludeFiles       types.StringSet
	IgnoreMatcher      types.PathMatcher
	Logger             *zap.Logger
}

// NewTreeBuilder configures a TreeBuilder from resolved filters.
func NewTreeBuilder(filters types.FilterConfiguration, logger *zap.Logger) *TreeBuilder {
	return &TreeBuilder{
		ExcludeDirectories: filters.ExcludeDirectories,
		ExcludeFiles:       filters.ExcludeFiles,
		IgnoreMatcher:      filters.IgnoreMatcher,
		Logger:             logger,
	}
}

// RenderTree renders the tree below rootDirectoryPath using only directory and file name exclusions.
func RenderTree(rootDirectoryPath string, excludeDirectories types.StringSet, excludeFiles types.StringSet) (string, error) {
	treeBuilder := &TreeBuilder{ExcludeDirectories: excludeDirectories, ExcludeFiles: excludeFiles}
	return treeBuilder.RenderTree(rootDirectoryPath)
}

// RenderTree walks rootDirectoryPath depth-first and returns one line per
// directory followed by one line per non-excluded file it contains.
func (treeBuilder *TreeBuilder) RenderTree(rootDirectoryPath string) (string, error) {
	absoluteRootPath, rootError := ResolveRootDirectory(rootDirectoryPath)
	if rootError != nil {
		return "", rootError
	}

	walker := directoryWalker{
		excludeDirectories: treeBuilder.ExcludeDirectories,
		ignoreMatcher:      treeBuilder.IgnoreMatcher,
		logger:             loggerOrNop(treeBuilder.Logger),
	}
	var treeLines []string
	walkError := walker.walk(absoluteRootPath, func(listing directoryListing) {
		indentation := strings.Repeat(treeIndentUnit, listing.Depth)
		treeLines = append(treeLines, indentation+treeBranchMarker+listing.Name+treeDirectorySuffix)
		for _, fileName := range listing.FileNames {
			if treeBuilder.ExcludeFiles.Contains(fileName) {
				continue
			}
			if treeBuilder.IgnoreMatcher != nil && treeBuilder.IgnoreMatcher.MatchesPath(listing.joinRelative(fileName)) {
				continue
			}
			treeLines = append(treeLines, indentation+treeIndentUnit+treeBranchMarker+fileName)
		}
	})
	if walkError != nil {
		return "", walkError
	}
	return strings.Join(treeLines, treeLineSeparator), nil
}
