package assistant

import "time"

// State is the conversation phase the assistant is in.
type State string

const (
	// StateCollecting accumulates draft fields from user messages.
	StateCollecting State = "collecting"
	// StateAwaitingConfirmation holds a complete draft pending "confirmar".
	StateAwaitingConfirmation State = "awaiting_confirmation"
)

// Session is one conversation's persisted state: exactly one draft, advanced
// one message at a time.
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	Draft     Draft     `json:"draft"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession starts an empty conversation in the collecting phase.
func NewSession(id string) *Session {
	return &Session{ID: id, State: StateCollecting}
}

// Reset discards the draft and returns the session to collecting. Used on
// cancel and after a successful commit.
func (s *Session) Reset() {
	s.Draft = Draft{}
	s.State = StateCollecting
}
