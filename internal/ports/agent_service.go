package ports

import (
	"context"

	"github.com/bnema/fchat/internal/domain"
)

// MessageOrder controls list direction for ListMessages.
type MessageOrder string

const (
	OrderAscending  MessageOrder = "asc"
	OrderDescending MessageOrder = "desc"
)

// AgentService is the remote agent-execution boundary: the five operations
// this client consumes. The real implementation lives behind a REST
// surface; tests substitute fakes.
type AgentService interface {
	CreateThread(ctx context.Context) (domain.ThreadID, error)
	CreateMessage(ctx context.Context, threadID domain.ThreadID, role domain.Role, content string) error
	CreateRun(ctx context.Context, threadID domain.ThreadID, agentID string) (domain.Run, error)
	GetRun(ctx context.Context, threadID domain.ThreadID, runID domain.RunID) (domain.Run, error)
	ListMessages(ctx context.Context, threadID domain.ThreadID, order MessageOrder) ([]domain.Message, error)
}
