package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for assistant output validation
var (
	// ErrMalformedOutput indicates the completion output was not valid JSON
	ErrMalformedOutput = goerr.New("malformed completion output")

	// ErrSchemaViolation indicates the completion output parsed as JSON but
	// did not match the reply shape or the action schema
	ErrSchemaViolation = goerr.New("completion output violates action schema")
)

// Context keys for error values
const (
	ActionTypeKey  = "action_type"
	ActionIndexKey = "action_index"
)
