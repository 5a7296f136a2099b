// Package output assembles the flattened text artifact.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/codecollect/internal/types"
)

const (
	treeHeading        = "Directory Tree:"
	fileBanner         = "# ======================"
	fileHeaderFormat   = "# File: %s"
	readErrorFormat    = "# Error reading %s: %v"
	fileBlockSeparator = "\n\n"
	lineSeparator      = "\n"

	summaryFormat        = "Collected %d %s, %s%s%s"
	summaryTokensFormat  = ", %d tokens"
	summaryModelFormat   = " (model: %s)"
	summaryFileSingular  = "file"
	summaryFilePlural    = "files"
	sizeUnitStep         = 1024
	sizeDecimalThreshold = 10
	trailingZeroDecimal  = ".0"
)

// sizeUnits are the lower-case suffixes of the run summary, one per power of 1024.
var sizeUnits = [...]string{"b", "kb", "mb", "gb", "tb", "pb"}

// RenderArtifact returns the artifact text: the tree heading, the rendered
// tree, and then for every file a banner, its path header, a banner, and its
// content or an inline error marker.
func RenderArtifact(result types.TraversalResult) string {
	artifactLines := []string{treeHeading, result.Tree, ""}
	for _, fileEntry := range result.Files {
		artifactLines = append(artifactLines,
			fileBlockSeparator+fileBanner,
			fmt.Sprintf(fileHeaderFormat, fileEntry.RelativePath),
			fileBanner,
			fileBody(fileEntry),
		)
	}
	return strings.Join(artifactLines, lineSeparator)
}

func fileBody(fileEntry types.FileEntry) string {
	if fileEntry.ReadError != nil {
		return fmt.Sprintf(readErrorFormat, fileEntry.RelativePath, fileEntry.ReadError)
	}
	return fileEntry.Content
}

// Summarize counts the aggregated files and their combined content size.
func Summarize(result types.TraversalResult) types.OutputSummary {
	var totalBytes int64
	for _, fileEntry := range result.Files {
		totalBytes += fileEntry.SizeBytes
	}
	return types.OutputSummary{
		TotalFiles: len(result.Files),
		TotalSize:  FormatSize(totalBytes),
	}
}

// FormatSummaryLine formats an OutputSummary into a single log line.
func FormatSummaryLine(summary types.OutputSummary) string {
	label := summaryFilePlural
	if summary.TotalFiles == 1 {
		label = summaryFileSingular
	}
	tokensPart := ""
	if summary.TotalTokens > 0 {
		tokensPart = fmt.Sprintf(summaryTokensFormat, summary.TotalTokens)
	}
	modelPart := ""
	if summary.Model != "" {
		modelPart = fmt.Sprintf(summaryModelFormat, summary.Model)
	}
	return fmt.Sprintf(summaryFormat, summary.TotalFiles, label, summary.TotalSize, tokensPart, modelPart)
}

// FormatSize renders a content size for the summary line: whole bytes below
// one kilobyte, one decimal below ten of a unit, whole units otherwise.
// Negative sizes render as zero bytes.
func FormatSize(byteCount int64) string {
	if byteCount < sizeUnitStep {
		if byteCount < 0 {
			byteCount = 0
		}
		return strconv.FormatInt(byteCount, 10) + sizeUnits[0]
	}
	scaledSize := float64(byteCount)
	unitIndex := 0
	for scaledSize >= sizeUnitStep && unitIndex < len(sizeUnits)-1 {
		scaledSize /= sizeUnitStep
		unitIndex++
	}
	precision := 0
	if scaledSize < sizeDecimalThreshold {
		precision = 1
	}
	formattedSize := strings.TrimSuffix(strconv.FormatFloat(scaledSize, 'f', precision, 64), trailingZeroDecimal)
	return formattedSize + sizeUnits[unitIndex]
}
