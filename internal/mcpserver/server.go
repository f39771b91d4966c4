// Package mcpserver exposes the action registry over the Model Context
// Protocol. Every registered action becomes a tool of the same name; calling
// it triggers the action and returns the notices it produced.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/joeycumines/ten-slots/internal/action"
	"github.com/joeycumines/ten-slots/internal/host"
)

// Name is the implementation name reported to clients.
const Name = "tenslots"

const (
	listActionsTool   = "list_actions"
	triggerActionTool = "trigger_action"
)

// ActionInfo describes one registered action.
type ActionInfo struct {
	ID    string `json:"id" jsonschema:"action identifier, also the tool name"`
	Label string `json:"label" jsonschema:"user-visible label"`
	Menu  string `json:"menu,omitempty" jsonschema:"menu the action belongs to, if any"`
}

// ListActionsOutput is the result of list_actions.
type ListActionsOutput struct {
	Actions []ActionInfo `json:"actions"`
}

// TriggerInput selects an action for trigger_action.
type TriggerInput struct {
	ID string `json:"id" jsonschema:"identifier of the action to trigger"`
}

// TriggerOutput carries the notices shown while the action ran.
type TriggerOutput struct {
	Action string      `json:"action"`
	Notes  []host.Note `json:"notes"`
}

// Server wraps an mcp.Server bound to an action registry.
type Server struct {
	mu       sync.Mutex // pairs each trigger with the notes it recorded
	actions  *action.Registry
	recorder *host.Recorder
	logger   *slog.Logger
	server   *mcp.Server
}

// New builds a server over actions. The recorder must be the notifier the
// extensions report through, so that each call can return what it showed.
func New(actions *action.Registry, recorder *host.Recorder, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		actions:  actions,
		recorder: recorder,
		logger:   logger,
		server: mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, &mcp.ServerOptions{
			Instructions: "Each tool triggers one editor action: activate a brush preset slot or execute a script slot.",
			Logger:       logger,
		}),
	}
	s.addTools()
	return s
}

// MCP returns the underlying server, for callers that manage transports.
func (s *Server) MCP() *mcp.Server { return s.server }

// Serve runs the server over stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Run runs the server over t.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	s.logger.Info("mcp server starting", "actions", len(s.actions.List()))
	if err := s.server.Run(ctx, t); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func (s *Server) addTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        listActionsTool,
		Description: "List every registered action in creation order.",
	}, s.listActions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        triggerActionTool,
		Description: "Trigger an action by id and return the notices it produced.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in TriggerInput) (*mcp.CallToolResult, TriggerOutput, error) {
		return s.trigger(in.ID)
	})

	for _, a := range s.actions.List() {
		id := a.ID
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        id,
			Description: a.Label,
		}, func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, TriggerOutput, error) {
			return s.trigger(id)
		})
	}
}

func (s *Server) listActions(context.Context, *mcp.CallToolRequest, struct{}) (*mcp.CallToolResult, ListActionsOutput, error) {
	out := ListActionsOutput{Actions: []ActionInfo{}}
	for _, a := range s.actions.List() {
		out.Actions = append(out.Actions, ActionInfo{ID: a.ID, Label: a.Label, Menu: a.Menu})
	}
	return nil, out, nil
}

func (s *Server) trigger(id string) (*mcp.CallToolResult, TriggerOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// notices left over from outside a tool call belong to nobody
	s.recorder.Drain()

	if err := s.actions.Trigger(id); err != nil {
		return nil, TriggerOutput{}, err
	}
	notes := s.recorder.Drain()
	if notes == nil {
		notes = []host.Note{}
	}
	s.logger.Debug("action triggered over mcp", "action", id, "notes", len(notes))

	texts := make([]string, 0, len(notes))
	for _, n := range notes {
		texts = append(texts, n.Text)
	}
	text := strings.Join(texts, "\n")
	if text == "" {
		text = id + " triggered"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, TriggerOutput{Action: id, Notes: notes}, nil
}
