package dto

import "strings"

const (
	MaxChatQuestion     = 2000
	MaxConversationID   = 100
	DefaultContextItems = 5
	MinContextItems     = 1
	MaxContextItems     = 10
)

type ChatRequest struct {
	Question        string  `json:"question" validate:"required,max=2000" example:"What stack do you use?"`
	ConversationID  *string `json:"conversation_id,omitempty"`
	MaxContextItems *int    `json:"max_context_items,omitempty"`
}

const InvalidQuestionMessage = "Invalid question format"

func (r ChatRequest) Validate() error {
	return validateStructWithMessage(r, InvalidQuestionMessage)
}

// ChatForward is the body sent to the AI backend.
type ChatForward struct {
	Question        string `json:"question"`
	ConversationID  string `json:"conversation_id,omitempty"`
	MaxContextItems int    `json:"max_context_items"`
}

func (r ChatRequest) ToForward() ChatForward {
	fwd := ChatForward{
		Question:        SanitizeChat(r.Question, MaxChatQuestion),
		MaxContextItems: DefaultContextItems,
	}
	if r.ConversationID != nil {
		fwd.ConversationID = Truncate(*r.ConversationID, MaxConversationID)
	}
	if r.MaxContextItems != nil {
		fwd.MaxContextItems = min(max(*r.MaxContextItems, MinContextItems), MaxContextItems)
	}
	return fwd
}

// ParseChat decodes and validates a chat widget body.
func ParseChat(raw []byte) (*ChatRequest, error) {
	var req ChatRequest
	if err := decodeStrict(raw, &req); err != nil {
		return nil, err
	}
	req.Question = strings.TrimSpace(req.Question)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}
