package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/codecollect/internal/commands"
	"github.com/temirov/codecollect/internal/config"
	"github.com/temirov/codecollect/internal/output"
	"github.com/temirov/codecollect/internal/services/sink"
	"github.com/temirov/codecollect/internal/tokenizer"
	"github.com/temirov/codecollect/internal/types"
)

const (
	warningTokenCountMessage = "unable to count tokens"
	errorGitignoreLoadFormat = "load gitignore patterns: %w"
)

// runCollect renders the tree, aggregates the selected files and delivers the
// artifact to exactly one sink.
func runCollect(options collectOptions, dependencies Dependencies) error {
	logger := dependencies.Logger

	rootDirectory, rootErr := commands.ResolveRootDirectory(options.rootDirectory)
	if rootErr != nil {
		return rootErr
	}

	filters := config.ResolveFilterConfiguration(options.filterInput, config.DefaultFilterDefaults())
	if options.useGitignore {
		matcher, matcherErr := config.LoadGitignoreMatcher(rootDirectory, filters.ExcludeDirectories, logger)
		if matcherErr != nil {
			return fmt.Errorf(errorGitignoreLoadFormat, matcherErr)
		}
		filters.IgnoreMatcher = matcher
	}

	collector := commands.NewCollector(filters, dependencies.WorkingDirectory, logger)
	result, collectErr := collector.Collect(rootDirectory)
	if collectErr != nil {
		return collectErr
	}

	artifact := output.RenderArtifact(result)
	summary := output.Summarize(result)
	if options.tokensEnabled {
		summary = countTokens(summary, artifact, options.tokenizerModel, dependencies)
	}

	destination := selectSink(options, dependencies)
	if deliverErr := destination.Deliver(artifact); deliverErr != nil {
		return deliverErr
	}
	logger.Info(output.FormatSummaryLine(summary))
	logger.Info(destination.Confirmation())
	return nil
}

// countTokens adds a token estimate to summary. Tokenizer failures are logged
// and leave the summary without tokens.
func countTokens(summary types.OutputSummary, artifact string, model string, dependencies Dependencies) types.OutputSummary {
	counter, _, counterErr := dependencies.CounterFactory(tokenizer.Config{Model: model})
	if counterErr != nil {
		dependencies.Logger.Warn(warningTokenCountMessage, zap.String("model", model), zap.Error(counterErr))
		return summary
	}
	tokens, countErr := tokenizer.CountText(counter, artifact)
	if countErr != nil {
		dependencies.Logger.Warn(warningTokenCountMessage, zap.String("model", model), zap.Error(countErr))
		return summary
	}
	summary.TotalTokens = tokens
	summary.Model = counter.Name()
	return summary
}

func selectSink(options collectOptions, dependencies Dependencies) sink.Sink {
	if options.useClipboard {
		return sink.NewClipboardSink(dependencies.Copier)
	}
	return sink.NewFileSink(options.outputFilePath)
}
