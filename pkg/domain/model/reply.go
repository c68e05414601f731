package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// Reply is the validated top-level shape of an assistant completion:
// a conversational message plus an ordered list of requested actions.
type Reply struct {
	Message string   `json:"message"`
	Actions []Action `json:"actions"`
}

// ParseReply parses raw completion output and strictly validates it against
// the reply shape and the action schema. Validation is all-or-nothing: a
// reply containing one invalid action among valid ones is rejected wholesale.
func ParseReply(raw string) (*Reply, error) {
	var decoded struct {
		Message *string   `json:"message"`
		Actions *[]Action `json:"actions"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, goerr.Wrap(ErrMalformedOutput, "completion output is not valid JSON",
			goerr.V("raw", raw))
	}

	if decoded.Message == nil {
		return nil, goerr.Wrap(ErrSchemaViolation, "reply is missing message field")
	}
	if decoded.Actions == nil {
		return nil, goerr.Wrap(ErrSchemaViolation, "reply is missing actions field")
	}

	reply := &Reply{
		Message: *decoded.Message,
		Actions: *decoded.Actions,
	}
	for i := range reply.Actions {
		if err := reply.Actions[i].Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid action in reply", goerr.V(ActionIndexKey, i))
		}
	}

	return reply, nil
}
