package domain

import "errors"

type ThreadID string

var ErrThreadAlreadySet = errors.New("session thread id already set")

// Turn is one entry of the visible transcript.
type Turn struct {
	Role Role
	Text string
}

// Session is the process-local conversation state: a lazily created remote
// thread reference plus the ordered transcript. It is owned by the
// presentation layer and handed to the driver per call; nothing here is
// safe for concurrent use, and nothing needs to be — the UI allows a
// single in-flight ask.
type Session struct {
	threadID ThreadID
	history  []Turn
}

func NewSession() *Session {
	return &Session{}
}

// ThreadID reports the remote thread reference, if one has been created.
func (s *Session) ThreadID() (ThreadID, bool) {
	if s.threadID == "" {
		return "", false
	}
	return s.threadID, true
}

// SetThreadID records the thread reference. A session holds at most one
// thread between resets, so setting a second id is an error.
func (s *Session) SetThreadID(id ThreadID) error {
	if s.threadID != "" {
		return ErrThreadAlreadySet
	}
	s.threadID = id
	return nil
}

func (s *Session) AppendTurn(role Role, text string) {
	s.history = append(s.history, Turn{Role: role, Text: text})
}

// History returns a copy of the transcript in append order.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Reset clears the thread reference and the transcript together.
func (s *Session) Reset() {
	s.threadID = ""
	s.history = nil
}
