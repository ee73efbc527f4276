// Package rest implements the AgentService port against the hosted agents
// REST surface (threads, messages, runs).
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/fchat/internal/domain"
	"github.com/bnema/fchat/internal/ports"
	"github.com/google/uuid"
)

const (
	// DefaultAPIVersion is the agents data-plane version this client is
	// written against.
	DefaultAPIVersion = "v1"

	maxResponseBytes = 1 << 20
)

type Client struct {
	baseURL    string
	apiVersion string
	tokens     ports.TokenProvider
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.AgentService = (*Client)(nil)

func NewClient(endpoint string, tokens ports.TokenProvider, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    strings.TrimRight(endpoint, "/"),
		apiVersion: DefaultAPIVersion,
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger,
	}
}

// SetAPIVersion overrides the api-version query parameter sent with every
// request. Empty values are ignored.
func (c *Client) SetAPIVersion(version string) {
	if version != "" {
		c.apiVersion = version
	}
}

type threadResponse struct {
	ID string `json:"id"`
}

type createMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type createRunRequest struct {
	AssistantID string `json:"assistant_id"`
}

type runResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type messageTextValue struct {
	Value string `json:"value"`
}

type messageContentPart struct {
	Type string            `json:"type"`
	Text *messageTextValue `json:"text,omitempty"`
}

type messageResponse struct {
	ID      string               `json:"id"`
	Role    string               `json:"role"`
	Content []messageContentPart `json:"content"`
}

type listMessagesResponse struct {
	Data []messageResponse `json:"data"`
}

func (c *Client) CreateThread(ctx context.Context) (domain.ThreadID, error) {
	var resp threadResponse
	if err := c.do(ctx, http.MethodPost, "/threads", nil, struct{}{}, &resp); err != nil {
		return "", fmt.Errorf("create thread: %w", err)
	}

	return domain.ThreadID(resp.ID), nil
}

func (c *Client) CreateMessage(ctx context.Context, threadID domain.ThreadID, role domain.Role, content string) error {
	path := fmt.Sprintf("/threads/%s/messages", url.PathEscape(string(threadID)))
	body := createMessageRequest{Role: string(role), Content: content}

	if err := c.do(ctx, http.MethodPost, path, nil, body, nil); err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

func (c *Client) CreateRun(ctx context.Context, threadID domain.ThreadID, agentID string) (domain.Run, error) {
	path := fmt.Sprintf("/threads/%s/runs", url.PathEscape(string(threadID)))

	var resp runResponse
	if err := c.do(ctx, http.MethodPost, path, nil, createRunRequest{AssistantID: agentID}, &resp); err != nil {
		return domain.Run{}, fmt.Errorf("create run: %w", err)
	}

	return domain.Run{ID: domain.RunID(resp.ID), Status: domain.RunStatus(resp.Status)}, nil
}

func (c *Client) GetRun(ctx context.Context, threadID domain.ThreadID, runID domain.RunID) (domain.Run, error) {
	path := fmt.Sprintf("/threads/%s/runs/%s", url.PathEscape(string(threadID)), url.PathEscape(string(runID)))

	var resp runResponse
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return domain.Run{}, fmt.Errorf("get run: %w", err)
	}

	return domain.Run{ID: domain.RunID(resp.ID), Status: domain.RunStatus(resp.Status)}, nil
}

func (c *Client) ListMessages(ctx context.Context, threadID domain.ThreadID, order ports.MessageOrder) ([]domain.Message, error) {
	path := fmt.Sprintf("/threads/%s/messages", url.PathEscape(string(threadID)))
	query := url.Values{"order": []string{string(order)}}

	var resp listMessagesResponse
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages := make([]domain.Message, 0, len(resp.Data))
	for _, m := range resp.Data {
		parts := make([]domain.ContentPart, 0, len(m.Content))
		for _, part := range m.Content {
			converted := domain.ContentPart{Type: part.Type}
			if part.Text != nil {
				converted.Text = part.Text.Value
			}
			parts = append(parts, converted)
		}
		messages = append(messages, domain.Message{
			ID:      m.ID,
			Role:    domain.Role(m.Role),
			Content: parts,
		})
	}

	return messages, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", c.apiVersion)
	endpoint := c.baseURL + path + "?" + query.Encode()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("resolve bearer token: %w", err)
	}

	requestID := uuid.NewString()
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set("x-ms-client-request-id", requestID)
	request.Header.Set("User-Agent", "fchat")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("agent service call",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		detail := strings.TrimSpace(string(responseBody))
		if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: status %d: %s", domain.ErrAuthFailed, response.StatusCode, detail)
		}
		return &domain.ProtocolError{StatusCode: response.StatusCode, Body: detail}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
