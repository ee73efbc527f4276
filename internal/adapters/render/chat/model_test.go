package chat

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/fchat/internal/domain"
)

type stubAsker struct {
	reply string
	err   error
	calls int
	last  string
}

func (s *stubAsker) Ask(_ context.Context, _ *domain.Session, userText string) (string, error) {
	s.calls++
	s.last = userText
	return s.reply, s.err
}

func pressEnter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestSubmitAppendsUserTurnAndStartsWaiting(t *testing.T) {
	session := domain.NewSession()
	m := NewModel(context.Background(), &stubAsker{reply: "ok"}, session)
	m.input.SetValue("hello agent")

	m, cmd := pressEnter(t, m)

	require.NotNil(t, cmd)
	assert.True(t, m.waiting)

	history := session.History()
	require.Len(t, history, 1)
	assert.Equal(t, domain.Turn{Role: domain.RoleUser, Text: "hello agent"}, history[0])
	assert.Empty(t, m.input.Value())
}

func TestSubmitIgnoresBlankInput(t *testing.T) {
	session := domain.NewSession()
	m := NewModel(context.Background(), &stubAsker{}, session)
	m.input.SetValue("   ")

	m, cmd := pressEnter(t, m)

	assert.Nil(t, cmd)
	assert.False(t, m.waiting)
	assert.Empty(t, session.History())
}

func TestEnterIgnoredWhileWaiting(t *testing.T) {
	session := domain.NewSession()
	m := NewModel(context.Background(), &stubAsker{}, session)
	m.input.SetValue("first")
	m, _ = pressEnter(t, m)
	require.True(t, m.waiting)

	m.input.SetValue("second")
	m, cmd := pressEnter(t, m)

	assert.Nil(t, cmd)
	require.Len(t, session.History(), 1)
}

func TestReplyAppendsAssistantTurn(t *testing.T) {
	session := domain.NewSession()
	session.AppendTurn(domain.RoleUser, "hello")
	m := NewModel(context.Background(), &stubAsker{}, session)
	m.waiting = true

	updated, _ := m.Update(replyMsg{text: "hi there"})
	m = updated.(Model)

	assert.False(t, m.waiting)
	history := session.History()
	require.Len(t, history, 2)
	assert.Equal(t, domain.Turn{Role: domain.RoleAssistant, Text: "hi there"}, history[1])
	assert.Empty(t, m.errLine)
}

func TestReplyErrorShowsClassifiedNoticeWithoutAssistantTurn(t *testing.T) {
	session := domain.NewSession()
	session.AppendTurn(domain.RoleUser, "hello")
	m := NewModel(context.Background(), &stubAsker{}, session)
	m.waiting = true

	updated, _ := m.Update(replyMsg{err: &domain.RunFailedError{Status: domain.RunStatusFailed}})
	m = updated.(Model)

	assert.False(t, m.waiting)
	assert.Contains(t, m.errLine, "did not complete")
	assert.Contains(t, m.errLine, "failed")
	assert.Len(t, session.History(), 1)
}

func TestAskCmdCallsDriverWithSubmittedText(t *testing.T) {
	session := domain.NewSession()
	asker := &stubAsker{reply: "the answer"}
	m := NewModel(context.Background(), asker, session)

	msg := m.askCmd("what is it?")()

	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	assert.Equal(t, "the answer", reply.text)
	assert.NoError(t, reply.err)
	assert.Equal(t, 1, asker.calls)
	assert.Equal(t, "what is it?", asker.last)
}

func TestResetClearsSessionAndShowsNotice(t *testing.T) {
	session := domain.NewSession()
	require.NoError(t, session.SetThreadID("thread-1"))
	session.AppendTurn(domain.RoleUser, "hello")
	m := NewModel(context.Background(), &stubAsker{}, session)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)

	_, ok := session.ThreadID()
	assert.False(t, ok)
	assert.Empty(t, session.History())
	assert.Contains(t, m.notice, "new thread")
}

func TestResetIgnoredWhileWaiting(t *testing.T) {
	session := domain.NewSession()
	require.NoError(t, session.SetThreadID("thread-1"))
	m := NewModel(context.Background(), &stubAsker{}, session)
	m.waiting = true

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = updated.(Model)

	_, ok := session.ThreadID()
	assert.True(t, ok)
}

func TestViewShowsThreadPlaceholderThenID(t *testing.T) {
	session := domain.NewSession()
	m := NewModel(context.Background(), &stubAsker{}, session)

	assert.Contains(t, m.View(), "thread: —")

	require.NoError(t, session.SetThreadID("thread_abc"))
	assert.Contains(t, m.View(), "thread: thread_abc")
}
