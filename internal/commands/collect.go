package commands

import (
	"go.uber.org/zap"

	"github.com/temirov/codecollect/internal/types"
)

// Collector runs the tree pass and then the aggregation pass over one root.
type Collector struct {
	TreeBuilder *TreeBuilder
	Aggregator  *Aggregator
}

// NewCollector wires a TreeBuilder and an Aggregator sharing the same filters.
func NewCollector(filters types.FilterConfiguration, workingDirectory string, logger *zap.Logger) *Collector {
	return &Collector{
		TreeBuilder: NewTreeBuilder(filters, logger),
		Aggregator:  NewAggregator(filters, workingDirectory, logger),
	}
}

// Collect validates rootDirectoryPath and returns the rendered tree together
// with the aggregated files. A missing root yields ErrRootDirectoryMissing.
func (collector *Collector) Collect(rootDirectoryPath string) (types.TraversalResult, error) {
	if _, rootError := ResolveRootDirectory(rootDirectoryPath); rootError != nil {
		return types.TraversalResult{}, rootError
	}
	renderedTree, treeError := collector.TreeBuilder.RenderTree(rootDirectoryPath)
	if treeError != nil {
		return types.TraversalResult{}, treeError
	}
	fileEntries, contentError := collector.Aggregator.GetContentData(rootDirectoryPath)
	if contentError != nil {
		return types.TraversalResult{}, contentError
	}
	return types.TraversalResult{Tree: renderedTree, Files: fileEntries}, nil
}
