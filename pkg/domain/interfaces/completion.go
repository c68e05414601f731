package interfaces

import "context"

// CompletionService is the transport boundary to the external text-completion
// collaborator. It sends system instructions and the raw user utterance and
// returns the raw text payload without interpreting it.
type CompletionService interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
