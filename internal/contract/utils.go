package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/commitstreak/schema"
)

// Result label constants.
const (
	SucceededValue = "Succeeded"
	FailedValue    = "Failed"
	UnknownValue   = "Unknown"
)

// Color variables for console output.
var (
	SucceededColor = color.New(color.FgGreen, color.Bold) // succeededColor represents a met target.
	FailedColor    = color.New(color.FgRed, color.Bold)   // failedColor represents a missed target.
	UnknownColor   = color.New(color.FgYellow)            // unknownColor represents an open challenge.
	AheadColor     = color.New(color.FgCyan)              // aheadColor highlights a positive pace difference.
	BehindColor    = color.New(color.FgMagenta)           // behindColor highlights a negative pace difference.
)

// GetPlainLabel returns a plain text label for a challenge result.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(result schema.ChallengeResult) string {
	switch result {
	case schema.SucceededResult:
		return SucceededValue
	case schema.FailedResult:
		return FailedValue
	default:
		return UnknownValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(result schema.ChallengeResult) string {
	text := GetPlainLabel(result)

	switch text {
	case SucceededValue:
		return SucceededColor.Sprint(text)
	case FailedValue:
		return FailedColor.Sprint(text)
	default:
		return UnknownColor.Sprint(text)
	}
}

// GetColorPace returns the pace description colored by its sign.
func GetColorPace(difference int) string {
	text := schema.DescribePace(difference)
	switch {
	case difference > 0:
		return AheadColor.Sprint(text)
	case difference < 0:
		return BehindColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
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

// LogInfo logs a progress message to stderr so it never mixes with report output.
func LogInfo(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".streak_cache.db"
	}
	return filepath.Join(homeDir, ".streak_cache.db")
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
