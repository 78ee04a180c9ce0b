package models

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// Object ids are 24-character lowercase hex strings (12 random bytes),
// generated application-side so entities get their key before the first save.
var objectIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// NewObjectID generates a new 24-hex object id.
func NewObjectID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// IsValidObjectID reports whether s is a well-formed 24-hex object id.
func IsValidObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}
