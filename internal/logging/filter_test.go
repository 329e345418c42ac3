package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers build fake secrets at runtime to avoid secret scanner false positives.
func fakeBearerToken() string { return "TESTONLYbearer" + "token1234567890" }
func fakeAPIKey() string      { return "TESTONLY" + "apikey12345678" }
func fakePassword() string    { return "testonly" + "password123" }

func TestContainsSensitiveData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"email", "entry from kim@example.com received", true},
		{"email with plus", "user+tag@mail.co.kr", true},
		{"dashed phone", "phone 010-1234-5678", true},
		{"international phone", "call +82 10 1234 5678", true},
		{"us phone", "(555) 123-4567 ext", true},
		{"dotted phone", "555.123.4567", true},
		{"digit run phone", "01012345678", true},
		{"api key", "api_key=" + fakeAPIKey(), true},
		{"bearer", "Bearer " + fakeBearerToken(), true},
		{"password", "password: " + fakePassword(), true},
		{"plain countdown", "countdown reached deadline", false},
		{"remaining", "3d 04h 05m 06s", false},
		{"iso date", "target 2025-12-31T00:00:00Z", false},
		{"request id", "request_id=2f1c6a52-7d1e-4f7b-9e4a-6a0c8f3b2d11", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ContainsSensitiveData(tc.input))
		})
	}
}

func TestFilterSensitiveValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		want        string
		notContains string
	}{
		{
			name:  "email",
			input: "submitted by lee@example.com",
			want:  "submitted by [REDACTED]",
		},
		{
			name:        "phone",
			input:       "phone=010-9876-5432 ok",
			notContains: "9876",
		},
		{
			name:  "no sensitive data",
			input: "event fetched",
			want:  "event fetched",
		},
		{
			name:        "bearer",
			input:       "Authorization header Bearer " + fakeBearerToken(),
			notContains: fakeBearerToken(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := FilterSensitiveValue(tc.input)
			if tc.want != "" {
				assert.Equal(t, tc.want, got)
			}
			if tc.notContains != "" {
				assert.NotContains(t, got, tc.notContains)
				assert.Contains(t, got, RedactedValue)
			}
		})
	}
}

func TestIsSensitiveFieldName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field string
		want  bool
	}{
		{"email", true},
		{"EMAIL", true},
		{"phone", true},
		{"user_email", true},
		{"phone-number", true},
		{"entry_phone_raw", true},
		{"api_key", true},
		{"password", true},
		{"db_password", true},
		{"name", false},
		{"event_id", false},
		{"end_date", false},
		{"request_id", false},
		{"emailer", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.field, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, IsSensitiveFieldName(tc.field))
		})
	}
}

func TestRedactIfSensitive(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RedactedValue, RedactIfSensitive("email", "kim@example.com"))
	assert.Equal(t, RedactedValue, RedactIfSensitive("phone", "anything"))
	assert.Equal(t, "Kim", RedactIfSensitive("name", "Kim"))
	assert.Equal(t, "note [REDACTED]", RedactIfSensitive("note", "note kim@example.com"))
}

func TestSafeValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RedactedValue, SafeValue("email", "kim@example.com"))
	assert.Equal(t, "winter giveaway", SafeValue("title", "winter giveaway"))
}

func TestSensitiveDataHook(t *testing.T) {
	t.Parallel()

	t.Run("flags sensitive message", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())
		logger.Info().Msg("entry from kim@example.com")

		assert.Contains(t, buf.String(), `"contains_filtered_data":true`)
	})

	t.Run("leaves clean message alone", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := zerolog.New(&buf).Hook(NewSensitiveDataHook())
		logger.Info().Msg("countdown started")

		assert.NotContains(t, buf.String(), "contains_filtered_data")
	})
}

func TestFilteringWriter_WithZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(NewFilteringWriter(&buf))

	logger.Info().Str("contact", "kim@example.com").Msg("entry submitted")

	output := buf.String()
	assert.NotContains(t, output, "kim@example.com")
	assert.Contains(t, output, RedactedValue)
	assert.Contains(t, output, "entry submitted")
}

func TestFilteringWriter_PreservesWriteLength(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	fw := NewFilteringWriter(&buf)

	input := "reach me at kim@example.com"
	n, err := fw.Write([]byte(input))

	require.NoError(t, err)
	assert.Equal(t, len(input), n)
	assert.Equal(t, "reach me at [REDACTED]", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFilteringWriter_PropagatesError(t *testing.T) {
	t.Parallel()

	n, err := NewFilteringWriter(failingWriter{}).Write([]byte("hello"))

	require.Error(t, err)
	assert.Zero(t, n)
}

func TestContainsWordBoundary(t *testing.T) {
	t.Parallel()

	seps := []string{"_", "-"}

	tests := []struct {
		name     string
		input    string
		word     string
		expected bool
	}{
		{"prefix underscore", "email_address", "email", true},
		{"prefix dash", "email-address", "email", true},
		{"suffix underscore", "user_email", "email", true},
		{"suffix dash", "user-email", "email", true},
		{"infix", "entry_phone_raw", "phone", true},
		{"no boundary", "emailer", "email", false},
		{"exact is not a boundary", "email", "email", false},
		{"empty name", "", "email", false},
		{"empty word", "email", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, containsWordBoundary(tc.input, tc.word, seps))
		})
	}
}
