package model

// ActionResult is the outcome of executing one Action. Exactly one result is
// produced per attempted action; results are immutable once produced.
type ActionResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// NewActionSuccess returns a successful result carrying the mutated entity
// or a summary of the mutation.
func NewActionSuccess(data any) ActionResult {
	return ActionResult{Success: true, Data: data}
}

// NewActionFailure returns a failed result carrying a human-readable error
func NewActionFailure(err error) ActionResult {
	return ActionResult{Success: false, Error: err.Error()}
}
