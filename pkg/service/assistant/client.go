package assistant

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/deckhand-app/deckhand/pkg/domain/types"
)

// client implements interfaces.CompletionService on top of a gollem LLM client
type client struct {
	llmClient gollem.LLMClient
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a completion gateway backed by the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (interfaces.CompletionService, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Complete sends one system prompt and one user message and returns the raw
// completion text. Parsing and validation are the caller's concern.
func (c *client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildReplySchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(userMessage))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM")
	}

	if len(resp.Texts) == 0 {
		return "", goerr.New("empty response from LLM")
	}

	return resp.Texts[0], nil
}

// buildReplySchema creates the JSON schema for structured output
func buildReplySchema() *gollem.Parameter {
	actionTypes := make([]string, 0, len(types.AllActionTypes()))
	for _, t := range types.AllActionTypes() {
		actionTypes = append(actionTypes, string(t))
	}

	return &gollem.Parameter{
		Title:       "AssistantReply",
		Description: "Conversational reply with the board actions to perform",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"message": {
				Type:        gollem.TypeString,
				Description: "Conversational response to show the user",
				Required:    true,
			},
			"actions": {
				Type:        gollem.TypeArray,
				Description: "Board actions to perform, in order. Empty when the request needs no changes",
				Required:    true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"type": {
							Type:        gollem.TypeString,
							Description: "The action to perform",
							Enum:        actionTypes,
							Required:    true,
						},
						"payload": {
							Type:        gollem.TypeObject,
							Description: "Parameters of the action",
							Required:    true,
						},
					},
				},
			},
		},
	}
}
