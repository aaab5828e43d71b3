package errors

import "fmt"

// userMessages maps structured error codes to the copy shown to case
// managers. Keyed by code rather than matching on message text so a
// backend wording change cannot break the translation.
var userMessages = map[string]string{
	ErrCodeNoActiveClient:   "Select a client (or finish the guest name fields) before continuing.",
	ErrCodeNoTemplate:       "Pick a resume template before generating a PDF.",
	ErrCodeResumeNotFound:   "That resume could not be found. It may have been removed.",
	ErrCodeClientNotFound:   "That client could not be found. Refresh the client list and try again.",
	ErrCodePDFNotReady:      "The PDF has not been generated yet. Generate it first, then download.",
	ErrCodePDFGeneration:    "The resume PDF could not be generated. Please try again.",
	ErrCodeGatewayTimeout:   "The server took too long to respond. Check your connection and try again.",
	ErrCodeCircuitOpen:      "The resume service is temporarily unavailable. Please wait a moment and try again.",
	ErrCodeGatewayFailed:    "Something went wrong talking to the resume service. Please try again.",
	ErrCodeInvalidProfile:   "The profile has missing or invalid fields. Fix the highlighted fields and retry.",
	ErrCodePrintFallback:    "A printable version was saved instead of a PDF. Open it and print to PDF manually.",
	ErrCodeDashboardSource:  "Part of the dashboard could not be loaded. The rest is up to date.",
	ErrCodeCacheUnavailable: "Offline data is unavailable right now. Recent items may be missing.",
}

const genericUserMessage = "Sorry, something went wrong. Please try again."

// UserMessage translates any error into the copy safe to show on screen.
// Raw error text never reaches the user unless debug is set, which prefixes
// the underlying message for troubleshooting builds.
func UserMessage(err error, debug bool) string {
	if err == nil {
		return ""
	}

	if debug {
		return fmt.Sprintf("[debug] %v", err)
	}

	if appErr, ok := AsAppError(err); ok {
		if msg, found := userMessages[appErr.Code]; found {
			return msg
		}
	}

	return genericUserMessage
}
