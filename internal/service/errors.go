package service

import "strings"

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Caller identifies the authenticated principal a request runs as. It feeds
// the audit trail; the core logic never branches on it.
type Caller struct {
	Actor     string
	Role      string
	IP        string
	RequestID string
}
