package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/sweeplens/schema"
)

// Severity label constants.
const (
	HighValue   = "High"   // High value
	MediumValue = "Medium" // Medium value
	LowValue    = "Low"    // Low value
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // highColor represents standard danger.
	MediumColor = color.New(color.FgYellow)          // mediumColor represents standard caution, not bold.
	LowColor    = color.New(color.FgCyan)            // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label for a severity. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(sev schema.Severity) string {
	switch sev {
	case schema.HighSeverity:
		return HighValue
	case schema.MediumSeverity:
		return MediumValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(sev schema.Severity) string {
	text := GetPlainLabel(sev)

	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case MediumValue:
		return MediumColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sweeplens_history.db"
	}
	return filepath.Join(homeDir, ".sweeplens_history.db")
}

// TruncateDetails truncates a details string to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so there is space for both the
// "..." suffix and at least one character of content.
func TruncateDetails(details string, maxWidth int) string {
	runes := []rune(details)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return details
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
