// Package logging provides logging utilities including sensitive data filtering.
// This package contains hooks and utilities for zerolog that keep personal
// data from entry submissions and credentials out of log files.
package logging

import (
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns contains compiled regular expressions for detecting sensitive values.
// Entry submissions carry an email and phone number; the event API may sit
// behind a token.
var sensitivePatterns = []*regexp.Regexp{ //nolint:gochecknoglobals // Package-level patterns for reuse
	// Email addresses
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),

	// Phone numbers: optional +country code, then 3-4 digit groups separated by - . or space
	regexp.MustCompile(`\+?\d{1,3}[-. ]?\(?\d{2,4}\)?[-. ]\d{3,4}[-. ]\d{4}\b`),

	// Phone numbers written as one run of 10-11 digits starting with 0 or 1
	regexp.MustCompile(`\b0\d{9,10}\b`),

	// Generic API keys (api_key, apikey, api-key followed by value)
	regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[:=]\s*["']?([a-zA-Z0-9_-]{16,})["']?`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),

	// Authorization headers with tokens
	regexp.MustCompile(`(?i)authorization\s*[:=]\s*["']?[a-zA-Z0-9_-]{20,}["']?`),

	// Generic secret patterns
	regexp.MustCompile(`(?i)(secret|password|credential|passwd|pwd)\s*[:=]\s*["']?[^\s"']{8,}["']?`),

	// Long token-like values
	regexp.MustCompile(`(?i)(token|auth)\s*[:=]\s*["']?[a-zA-Z0-9+/=]{32,}["']?`),
}

// sensitiveFieldNames contains field names that should always have their values redacted.
var sensitiveFieldNames = map[string]struct{}{ //nolint:gochecknoglobals // Package-level lookup for reuse
	"email":         {},
	"phone":         {},
	"api_key":       {},
	"apikey":        {},
	"auth_token":    {},
	"password":      {},
	"passwd":        {},
	"secret":        {},
	"credential":    {},
	"credentials":   {},
	"access_token":  {},
	"refresh_token": {},
	"bearer":        {},
	"authorization": {},
	"token":         {},
}

// fieldSeparators are the characters that delimit words in a field name.
var fieldSeparators = []string{"_", "-"} //nolint:gochecknoglobals // Package-level lookup for reuse

// SensitiveDataHook is a zerolog hook that flags log entries whose message
// contains sensitive data.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements the zerolog.Hook interface.
// zerolog does not let a hook rewrite the message, so the hook only marks
// the event. Field values are filtered at the call site with SafeValue, and
// the file writer is wrapped in a FilteringWriter.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// ContainsSensitiveData checks if a string contains any sensitive data patterns.
func ContainsSensitiveData(s string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// FilterSensitiveValue replaces every match of a sensitive pattern with [REDACTED].
func FilterSensitiveValue(value string) string {
	result := value
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// IsSensitiveFieldName reports whether a field name indicates sensitive data.
// A name matches exactly ("email") or as a separated word ("user_email").
func IsSensitiveFieldName(fieldName string) bool {
	lowerName := strings.ToLower(fieldName)
	if _, ok := sensitiveFieldNames[lowerName]; ok {
		return true
	}
	for sensitive := range sensitiveFieldNames {
		if containsWordBoundary(lowerName, sensitive, fieldSeparators) {
			return true
		}
	}
	return false
}

// containsWordBoundary reports whether word appears in name delimited by
// one of seps on at least one side, e.g. "user_email" or "email-address".
func containsWordBoundary(name, word string, seps []string) bool {
	if name == "" || word == "" {
		return false
	}
	for _, sep := range seps {
		if strings.HasPrefix(name, word+sep) ||
			strings.HasSuffix(name, sep+word) ||
			strings.Contains(name, sep+word+sep) {
			return true
		}
	}
	return false
}

// RedactIfSensitive returns [REDACTED] if the field name indicates sensitive data,
// otherwise returns the value with sensitive patterns filtered.
func RedactIfSensitive(fieldName, value string) string {
	if IsSensitiveFieldName(fieldName) {
		return RedactedValue
	}
	return FilterSensitiveValue(value)
}

// SafeValue returns a filtered value for a field, redacting sensitive data.
//
// Usage:
//
//	log.Info().Str("email", logging.SafeValue("email", entry.Email)).Msg("entry submitted")
func SafeValue(fieldName, value string) string {
	return RedactIfSensitive(fieldName, value)
}

// FilteringWriter wraps an io.Writer and filters sensitive data from output.
// It wraps the log file writer so personal data never reaches disk.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a new FilteringWriter that wraps the given writer.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer, filtering sensitive data before writing.
// It reports len(p) on success so callers never see a short write.
func (fw *FilteringWriter) Write(p []byte) (n int, err error) {
	filtered := FilterSensitiveValue(string(p))
	if _, err = fw.w.Write([]byte(filtered)); err != nil {
		return 0, err
	}
	return len(p), nil
}
