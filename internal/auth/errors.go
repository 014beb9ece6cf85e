package auth

import (
	"errors"
	"strings"

	"golang.org/x/oauth2"
)

// Sign-in failures must surface as distinct, actionable messages rather than
// raw provider errors. One taxonomy covers both sources: error codes inside
// the provider's token response, and failures the client observed before a
// code existed (closed window, blocked popup).
var authErrorMessages = map[string]string{
	"access_denied":             "Authentication cancelled. You closed the authentication window. Please try again.",
	"popup_closed_by_user":      "Authentication cancelled. You closed the authentication window. Please try again.",
	"popup_blocked":             "Popup blocked. Please allow popups for this site and try again.",
	"redirect_uri_mismatch":     "This domain is not authorized for sign-in. Add it to the OAuth app's authorized domains.",
	"unauthorized_client":       "This domain is not authorized for sign-in. Add it to the OAuth app's authorized domains.",
	"unsupported_response_type": "This sign-in method is not enabled. Please enable the provider or try another one.",
	"invalid_scope":             "This sign-in method is not enabled. Please enable the provider or try another one.",
	"invalid_client":            "Sign-in is misconfigured. Please check the OAuth client ID and secret.",
	"invalid_grant":             "Sign-in is misconfigured. Please check the OAuth client ID and secret.",
}

const genericAuthErrorMessage = "Failed to sign in. Please try again."

// MessageForCode maps a provider or client error code to its user-facing message.
func MessageForCode(code string) string {
	if msg, ok := authErrorMessages[strings.TrimSpace(strings.ToLower(code))]; ok {
		return msg
	}
	return genericAuthErrorMessage
}

// MapExchangeError maps a failed authorization-code exchange to a user-facing
// message, digging the error code out of the provider's token response when
// one is present.
func MapExchangeError(err error) string {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.ErrorCode != "" {
			return MessageForCode(retrieveErr.ErrorCode)
		}
		// Older providers put the code in the body without a parsed field.
		body := string(retrieveErr.Body)
		for code := range authErrorMessages {
			if strings.Contains(body, code) {
				return MessageForCode(code)
			}
		}
	}
	return genericAuthErrorMessage
}
