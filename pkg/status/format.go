package status

import (
	"fmt"
)

// FileFormatter defines how file status should be formatted
type FileFormatter interface {
	// FormatFileStatus formats a file status message
	FormatFileStatus(path string, status FileStatus, edits int) string

	// FormatSummary formats the totals of a run
	FormatSummary(files []FileInfo) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileStatus formats a file status message with emojis
func (f *DefaultFileFormatter) FormatFileStatus(path string, status FileStatus, edits int) string {
	switch status {
	case StatusModified:
		return fmt.Sprintf("📝 Modified %s (%d edits)", path, edits)
	case StatusPreviewed:
		return fmt.Sprintf("🔍 Would modify %s (%d edits)", path, edits)
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", path)
	case StatusRestored:
		return fmt.Sprintf("⏪ Restored %s", path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", path)
	}
}

// FormatSummary counts files by status
func (f *DefaultFileFormatter) FormatSummary(files []FileInfo) string {
	var modified, unchanged, failed int
	for _, info := range files {
		switch info.Status {
		case StatusModified, StatusPreviewed:
			modified++
		case StatusFailed:
			failed++
		default:
			unchanged++
		}
	}

	if failed > 0 {
		return fmt.Sprintf("❌ %d modified, %d unchanged, %d failed", modified, unchanged, failed)
	}
	return fmt.Sprintf("✅ %d modified, %d unchanged", modified, unchanged)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
