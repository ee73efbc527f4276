package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/fchat/internal/domain"
	"github.com/bnema/fchat/internal/ports"
)

const (
	// DefaultPollInterval is the fixed delay between run status checks:
	// short enough to feel responsive, long enough to not hammer the
	// service.
	DefaultPollInterval = 800 * time.Millisecond

	SentinelNoReply    = "(No reply content)"
	SentinelEmptyReply = "(Empty reply)"
)

// Driver orchestrates one conversational turn against the remote agent:
// ensure thread, post the user message, start a run, poll it to a terminal
// state, and extract the newest assistant reply. It holds no session state
// of its own; the caller owns the Session.
type Driver struct {
	svc          ports.AgentService
	agentID      string
	sleeper      ports.Sleeper
	pollInterval time.Duration
}

func NewDriver(svc ports.AgentService, agentID string, sleeper ports.Sleeper) *Driver {
	if sleeper == nil {
		sleeper = ports.SystemSleeper{}
	}

	return &Driver{
		svc:          svc,
		agentID:      agentID,
		sleeper:      sleeper,
		pollInterval: DefaultPollInterval,
	}
}

// SetPollInterval overrides the poll delay. Zero or negative values are
// ignored.
func (d *Driver) SetPollInterval(interval time.Duration) {
	if interval > 0 {
		d.pollInterval = interval
	}
}

// Ask sends userText on the session's thread and returns the assistant
// reply. The thread is created lazily on the first call and reused until
// the session is reset. Failures propagate unretried; the session is left
// with whatever thread id it had (a thread created just before a failure
// is kept and reused next turn).
func (d *Driver) Ask(ctx context.Context, session *domain.Session, userText string) (string, error) {
	threadID, err := d.ensureThread(ctx, session)
	if err != nil {
		return "", err
	}

	if err := d.svc.CreateMessage(ctx, threadID, domain.RoleUser, userText); err != nil {
		return "", fmt.Errorf("post user message: %w", err)
	}

	run, err := d.svc.CreateRun(ctx, threadID, d.agentID)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}

	// Poll until the run leaves the transient states. There is no
	// timeout: a stuck run blocks until the context is cancelled.
	for run.Status.Transient() {
		if err := d.sleeper.Sleep(ctx, d.pollInterval); err != nil {
			return "", err
		}

		run, err = d.svc.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return "", fmt.Errorf("poll run: %w", err)
		}
	}

	if run.Status != domain.RunStatusCompleted {
		return "", &domain.RunFailedError{Status: run.Status}
	}

	return d.latestReply(ctx, threadID)
}

func (d *Driver) ensureThread(ctx context.Context, session *domain.Session) (domain.ThreadID, error) {
	if threadID, ok := session.ThreadID(); ok {
		return threadID, nil
	}

	threadID, err := d.svc.CreateThread(ctx)
	if err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}
	if err := session.SetThreadID(threadID); err != nil {
		return "", err
	}

	return threadID, nil
}

func (d *Driver) latestReply(ctx context.Context, threadID domain.ThreadID) (string, error) {
	messages, err := d.svc.ListMessages(ctx, threadID, ports.OrderDescending)
	if err != nil {
		return "", fmt.Errorf("list messages: %w", err)
	}

	var reply *domain.Message
	for i := range messages {
		if messages[i].Role == domain.RoleAssistant {
			reply = &messages[i]
			break
		}
	}
	if reply == nil || len(reply.Content) == 0 {
		return SentinelNoReply, nil
	}

	parts := make([]string, 0, len(reply.Content))
	for _, part := range reply.Content {
		if part.Type == domain.ContentTypeText {
			parts = append(parts, part.Text)
		}
	}

	text := strings.TrimSpace(strings.Join(parts, "\n"))
	if text == "" {
		return SentinelEmptyReply, nil
	}

	return text, nil
}
