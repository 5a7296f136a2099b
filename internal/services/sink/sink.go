// Package sink delivers the assembled artifact to exactly one destination.
package sink

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/codecollect/internal/services/clipboard"
)

const (
	clipboardConfirmationMessage = "Copied to clipboard."
	fileConfirmationFormat       = "Written to '%s'."
	errorClipboardWriteFormat    = "clipboard error: %w"
	errorFileWriteFormat         = "error writing file %s: %w"
	outputFilePermissions        = 0o644
)

// ErrClipboardUnavailable is matched by errors.Is when copying to the clipboard fails.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Sink writes the artifact and describes the successful delivery.
type Sink interface {
	Deliver(content string) error
	Confirmation() string
}

// FileSink writes the artifact to a file, replacing any existing content.
type FileSink struct {
	Path string
}

// NewFileSink constructs a FileSink for path.
func NewFileSink(path string) *FileSink {
	return &FileSink{Path: path}
}

// Deliver writes content to the file.
func (fileSink *FileSink) Deliver(content string) error {
	if writeError := os.WriteFile(fileSink.Path, []byte(content), outputFilePermissions); writeError != nil {
		return fmt.Errorf(errorFileWriteFormat, fileSink.Path, writeError)
	}
	return nil
}

// Confirmation names the written file.
func (fileSink *FileSink) Confirmation() string {
	return fmt.Sprintf(fileConfirmationFormat, fileSink.Path)
}

// availabilityReporter is implemented by copiers that can tell up front
// whether a clipboard mechanism exists.
type availabilityReporter interface {
	Available() bool
}

// ClipboardSink copies the artifact out of band through a Copier.
type ClipboardSink struct {
	Copier clipboard.Copier
}

// NewClipboardSink constructs a ClipboardSink around copier.
func NewClipboardSink(copier clipboard.Copier) *ClipboardSink {
	return &ClipboardSink{Copier: copier}
}

// Deliver copies content. Failures wrap ErrClipboardUnavailable. A copier
// reporting no clipboard mechanism is not asked to copy.
func (clipboardSink *ClipboardSink) Deliver(content string) error {
	if clipboardSink.Copier == nil {
		return fmt.Errorf(errorClipboardWriteFormat, ErrClipboardUnavailable)
	}
	if reporter, reportsAvailability := clipboardSink.Copier.(availabilityReporter); reportsAvailability && !reporter.Available() {
		return fmt.Errorf(errorClipboardWriteFormat, ErrClipboardUnavailable)
	}
	if copyError := clipboardSink.Copier.Copy(content); copyError != nil {
		return fmt.Errorf(errorClipboardWriteFormat, errors.Join(ErrClipboardUnavailable, copyError))
	}
	return nil
}

// Confirmation reports the clipboard copy.
func (clipboardSink *ClipboardSink) Confirmation() string {
	return clipboardConfirmationMessage
}

var (
	_ Sink = (*FileSink)(nil)
	_ Sink = (*ClipboardSink)(nil)
)
