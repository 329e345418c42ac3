package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// A slice (not a map) because wrapped errors need errors.Is() traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	// ===================
	// Countdown
	// ===================
	{
		err: ErrInvalidEndDate,
		info: ErrorInfo{
			Message: "The end date could not be understood.",
			Action:  "Use a date like 2025-12-31 or an RFC 3339 timestamp like 2025-12-31T18:00:00+09:00.",
		},
	},
	{
		err: ErrMissingEndDate,
		info: ErrorInfo{
			Message: "No end date was given.",
			Action:  "Pass an end date argument, set event.end_date, or configure event.api_base_url.",
		},
	},
	{
		err: ErrEventEnded,
		info: ErrorInfo{
			Message: "The event has ended.",
			Action:  "",
		},
	},

	// ===================
	// Event API
	// ===================
	{
		err: ErrEventNotFound,
		info: ErrorInfo{
			Message: "The event API returned no event.",
			Action:  "Check that event.api_base_url points at the right service.",
		},
	},
	{
		err: ErrEventFetch,
		info: ErrorInfo{
			Message: "Could not fetch the event.",
			Action:  "Check your network connection and event.api_base_url, then retry.",
		},
	},
	{
		err: ErrEntrySubmit,
		info: ErrorInfo{
			Message: "The entry could not be submitted.",
			Action:  "Retry in a moment. Your entry was not recorded.",
		},
	},
	{
		err: ErrTermsNotAccepted,
		info: ErrorInfo{
			Message: "You must agree to the terms to enter.",
			Action:  "Accept the terms in the form or pass --agree.",
		},
	},

	// ===================
	// Configuration
	// ===================
	{
		err: ErrConfigNil,
		info: ErrorInfo{
			Message: "Configuration is not loaded.",
			Action:  "Ensure config.yaml exists and is valid YAML.",
		},
	},
	{
		err: ErrConfigInvalidEvent,
		info: ErrorInfo{
			Message: "Invalid event configuration.",
			Action:  "Check the 'event' section in config.yaml for invalid values.",
		},
	},
	{
		err: ErrConfigInvalidCountdown,
		info: ErrorInfo{
			Message: "Invalid countdown configuration.",
			Action:  "Check countdown.timezone is a valid IANA zone such as Asia/Seoul.",
		},
	},
	{
		err: ErrConfigInvalidServer,
		info: ErrorInfo{
			Message: "Invalid server configuration.",
			Action:  "Check the 'server' section in config.yaml for invalid values.",
		},
	},
	{
		err: ErrEmptyValue,
		info: ErrorInfo{
			Message: "A required value was not provided.",
			Action:  "Provide the required value and try again.",
		},
	},

	// ===================
	// User Interaction
	// ===================
	{
		err: ErrOperationCanceled,
		info: ErrorInfo{
			Message: "Operation was canceled.",
			Action:  "",
		},
	},
	{
		err: ErrMenuCanceled,
		info: ErrorInfo{
			Message: "Form was canceled.",
			Action:  "",
		},
	},
	{
		err: ErrNonInteractiveMode,
		info: ErrorInfo{
			Message: "This operation requires an interactive terminal.",
			Action:  "Run in a terminal, or pass --name, --phone, --email, --agree and --yes.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Pre-built mapping for O(1) lookup performance
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Direct sentinels hit the map; wrapped errors fall back to errors.Is().
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}

	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve or work around the issue.
//
// For errors that have no clear action, the action string will be empty.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
