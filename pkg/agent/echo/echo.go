package echo

import (
	"context"
	"log/slog"

	"adk/pkg/agent"
	"adk/pkg/api"
)

// EchoAgent is the identity transform agent used for wiring tests and as the
// reference implementation of the agent contract: the response is the input
// message, unchanged.
type EchoAgent struct {
	agent.Base
}

// NewEchoAgent creates an uninitialized echo agent.
func NewEchoAgent(name, description string) *EchoAgent {
	return &EchoAgent{
		Base: agent.NewBase(name, description),
	}
}

// Initialize implements api.Agent. The echo agent has no external setup.
func (a *EchoAgent) Initialize(ctx context.Context) error {
	if a.Initialized() {
		return nil
	}
	a.MarkInitialized()
	slog.InfoContext(ctx, "Echo agent initialized", "agent", a.Name())
	return nil
}

// ProcessMessage implements api.Agent. The context mapping is passed through
// without interpretation; it only shows up in the debug log.
func (a *EchoAgent) ProcessMessage(ctx context.Context, message string, msgContext map[string]any) (string, error) {
	if message == "" {
		return "", api.ValidationError("message must not be empty")
	}
	slog.DebugContext(ctx, "Echoing message", "agent", a.Name(), "length", len(message), "context_keys", len(msgContext))
	return message, nil
}
