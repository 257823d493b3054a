package api

import (
	"context"
)

// Agent defines the standardized contract every agent variant implements.
// An agent is constructed uninitialized; Initialize must succeed before
// ProcessMessage is used. The dispatcher enforces that ordering, so
// implementations may assume it.
type Agent interface {
	// Name returns the human-readable identity of this agent instance.
	Name() string

	// Initialize performs any setup needed before processing, such as
	// acquiring a model client. It fails with an InitializationError if
	// required external configuration (credentials, project id) is missing
	// or invalid. Calling it on an already-ready agent leaves the agent in
	// the same ready state.
	Initialize(ctx context.Context) error

	// ProcessMessage transforms an input message into a response string.
	// msgContext is an open-ended mapping passed through uninterpreted;
	// the core attaches no semantics to its contents.
	ProcessMessage(ctx context.Context, message string, msgContext map[string]any) (string, error)

	// Describe reports identity metadata for the agent listing endpoint.
	Describe() AgentInfo
}

// AgentInfo is the identity payload an agent reports about itself.
type AgentInfo struct {
	Status      string `json:"status"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ChatRequest is the standardized internal form of an incoming chat message,
// regardless of which channel produced it.
type ChatRequest struct {
	Message   string         `json:"message"`              // Text content to process
	AgentType string         `json:"agent_type"`           // Registry tag selecting the agent variant
	Context   map[string]any `json:"context,omitempty"`    // Opaque auxiliary data handed to the agent
	RequestID string         `json:"request_id,omitempty"` // Unique identifier for grouping logs of this request
	Session   SessionContext `json:"-"`                    // Origin information, used for logging and monitoring only
}

// ChatResponse is the result of a successfully dispatched chat request.
type ChatResponse struct {
	Response  string `json:"response"`
	AgentName string `json:"agent_name"`
	AgentType string `json:"agent_type"`
}

// SessionContext encapsulates identity and routing information for a
// conversation unit on a specific communication channel.
type SessionContext struct {
	ChannelID string // Identifier of the channel that originated the request (e.g., "web")
	UserID    string // Platform-specific unique identifier for the user
	Username  string // Display name or nickname of the user as provided by the platform
}

// Dispatcher resolves a chat request to an agent and invokes it.
type Dispatcher interface {
	HandleChat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// AgentDirectory exposes read-only registry state for listing endpoints.
type AgentDirectory interface {
	// AvailableTags lists every registered agent tag.
	AvailableTags() []string
	// InitializedAgents reports the instances created so far, keyed by tag.
	InitializedAgents() map[string]AgentInfo
}

// Channel defines the standardized lifecycle interface for communication
// surfaces (HTTP, Telegram, ...). A channel receives messages from its
// platform, hands them to the injected Dispatcher, and delivers the reply.
type Channel interface {
	ID() string
	Start(dispatcher Dispatcher) error
	Stop() error
}
