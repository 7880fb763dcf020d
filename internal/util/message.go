// internal/util/message.go
package util

import (
	"errors"
	"strings"
)

// GenericErrorMessage is shown when an error carries no readable message.
const GenericErrorMessage = "An unexpected error occurred"

// UserMessager is implemented by errors that carry a message meant for end users,
// typically extracted from a remote error payload.
type UserMessager interface {
	UserMessage() string
}

// UserMessage returns the first non-blank user-facing message found in err's
// chain, or fallback when there is none.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var um UserMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return fallback
}
