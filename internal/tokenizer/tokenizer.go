// Package tokenizer estimates token counts of the assembled artifact.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config captures tokenizer selection parameters provided by the CLI.
type Config struct {
	Model string
}

const (
	defaultModel                    = "gpt-4o"
	defaultEncodingName             = "cl100k_base"
	errorFallbackTokenizerFormat    = "initialize fallback tokenizer: %w"
	errorDefaultTokenizerInitFormat = "initialize default tokenizer: %w"
	errorEncodeFormat               = "count tokens with %s: %w"
)

// ErrNilEncoding is returned by a counter constructed without a tiktoken encoding.
var ErrNilEncoding = errors.New("nil tiktoken encoding")

var openAIModelPrefixes = []string{
	"gpt-",
	"text-embedding",
	"davinci",
	"curie",
	"babbage",
	"ada",
	"code-",
	"o1",
	"o3",
}

// NewCounter returns a Counter for the requested model together with the name
// of the model or encoding actually used. Models tiktoken does not know fall
// back to the cl100k_base encoding.
func NewCounter(cfg Config) (Counter, string, error) {
	model := normalizeModel(cfg.Model)

	if isOpenAIModel(model) {
		encoding, err := tiktoken.EncodingForModel(model)
		if err == nil && encoding != nil {
			return newTiktokenCounter(encoding, model), model, nil
		}
		fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
		if fallbackErr != nil {
			return nil, "", fmt.Errorf(errorFallbackTokenizerFormat, fallbackErr)
		}
		return newTiktokenCounter(fallback, defaultEncodingName), defaultEncodingName, nil
	}

	encoding, err := tiktoken.GetEncoding(defaultEncodingName)
	if err != nil {
		return nil, "", fmt.Errorf(errorDefaultTokenizerInitFormat, err)
	}
	return newTiktokenCounter(encoding, defaultEncodingName), defaultEncodingName, nil
}

func normalizeModel(model string) string {
	trimmed := strings.ToLower(strings.TrimSpace(model))
	if trimmed == "" {
		return defaultModel
	}
	return trimmed
}

func isOpenAIModel(model string) bool {
	for _, prefix := range openAIModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

// tiktokenCounter counts with one tiktoken encoding. name is the model or
// encoding reported in the run summary.
type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func newTiktokenCounter(encoding *tiktoken.Tiktoken, name string) tiktokenCounter {
	return tiktokenCounter{encoding: encoding, name: name}
}

// Name returns the model or encoding the counter resolved to.
func (counter tiktokenCounter) Name() string {
	return counter.name
}

// CountString returns the number of tokens in input. Special-token text is
// counted as ordinary text.
func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, fmt.Errorf(errorEncodeFormat, counter.name, ErrNilEncoding)
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
