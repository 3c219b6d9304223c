package api

import (
	"regexp"

	"github.com/google/uuid"
)

const requestIDPrefix = "req_"

var requestIDPattern = regexp.MustCompile(`^req_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// NewRequestID generates a request ID with the "req_" prefix followed by a
// random (version 4) UUID.
func NewRequestID() string {
	return requestIDPrefix + uuid.NewString()
}

// ValidateRequestID reports whether id has the format produced by NewRequestID.
func ValidateRequestID(id string) bool {
	return requestIDPattern.MatchString(id)
}
