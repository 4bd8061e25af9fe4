package authsdk

import (
	"encoding/base64"
	"strings"
)

// splitPayload returns the decoded payload segment of a compact JWT.
func splitPayload(token string) ([]byte, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, false
	}
	return payload, true
}
