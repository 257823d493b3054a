package handler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"adk/pkg/agent"
	"adk/pkg/api"
	"adk/pkg/config"
	"adk/pkg/monitor"
	"adk/pkg/utils"
)

// ChatDispatcher resolves incoming chat requests to agents and invokes them.
// It owns the agent registry and an instance cache: one agent instance per
// tag, created and initialized on first use, reused for every later request
// with that tag. All errors raised by an agent propagate unmodified; the
// dispatcher only logs them and hands them to the channel for translation.
type ChatDispatcher struct {
	registry *agent.Registry
	cfg      *config.Config
	sysCfg   *config.SystemConfig

	mu     sync.Mutex
	agents map[string]api.Agent // Lazily created instances, keyed by tag
}

// NewChatDispatcher builds a dispatcher around an explicitly owned registry.
// Registration happens on the registry before traffic starts; the dispatcher
// never mutates it.
func NewChatDispatcher(registry *agent.Registry, cfg *config.Config, sysCfg *config.SystemConfig) *ChatDispatcher {
	return &ChatDispatcher{
		registry: registry,
		cfg:      cfg,
		sysCfg:   sysCfg,
		agents:   make(map[string]api.Agent),
	}
}

// HandleChat implements api.Dispatcher. Steps, in order: validate the
// request, resolve the tag, obtain the (lazily initialized) agent instance,
// process the message, wrap the reply. No retries and no dispatcher-imposed
// timeouts; cancellation belongs to the caller's context.
func (d *ChatDispatcher) HandleChat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	if req.RequestID == "" {
		req.RequestID = utils.GenerateID()
	}
	ctx = context.WithValue(ctx, monitor.RequestIDContextKey, req.RequestID)
	start := time.Now()

	if req.Message == "" {
		err := api.ValidationError("message must not be empty")
		d.logFailure(ctx, req, err)
		return nil, err
	}

	tag := req.AgentType
	if tag == "" {
		tag = d.cfg.DefaultAgent
	}
	if tag == "" {
		err := api.ValidationError("agent_type must be provided")
		d.logFailure(ctx, req, err)
		return nil, err
	}

	ag, err := d.agentFor(ctx, tag)
	if err != nil {
		d.logFailure(ctx, req, err)
		return nil, err
	}

	reply, err := ag.ProcessMessage(ctx, req.Message, req.Context)
	if err != nil {
		d.logFailure(ctx, req, err)
		return nil, err
	}

	slog.InfoContext(ctx, "Chat handled",
		"agent_type", tag,
		"agent", ag.Name(),
		"channel", req.Session.ChannelID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &api.ChatResponse{
		Response:  reply,
		AgentName: ag.Name(),
		AgentType: tag,
	}, nil
}

// agentFor returns the cached agent instance for tag, constructing and
// initializing it on first use. Failed construction or initialization is
// not cached, so a later request retries the setup from scratch.
func (d *ChatDispatcher) agentFor(ctx context.Context, tag string) (api.Agent, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ag, ok := d.agents[tag]; ok {
		return ag, nil
	}

	factory, err := d.registry.Resolve(tag)
	if err != nil {
		return nil, err
	}

	ag, err := factory.Create(d.cfg.Agents[tag], d.sysCfg)
	if err != nil {
		return nil, api.InitializationError(err, "failed to construct agent for tag %q", tag)
	}

	if err := ag.Initialize(ctx); err != nil {
		return nil, err
	}

	d.agents[tag] = ag
	return ag, nil
}

// AvailableTags lists every registered agent tag.
func (d *ChatDispatcher) AvailableTags() []string {
	return d.registry.Tags()
}

// InitializedAgents reports the instances created so far, keyed by tag.
func (d *ChatDispatcher) InitializedAgents() map[string]api.AgentInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	infos := make(map[string]api.AgentInfo, len(d.agents))
	for tag, ag := range d.agents {
		infos[tag] = ag.Describe()
	}
	return infos
}

// logFailure records a dispatch failure with the agent tag and a message
// summary. Client faults (validation, unknown tag) log at warn; server and
// upstream faults log at error with the full cause for operator diagnosis.
func (d *ChatDispatcher) logFailure(ctx context.Context, req *api.ChatRequest, err error) {
	kind := api.KindOf(err)
	attrs := []any{
		"kind", string(kind),
		"agent_type", req.AgentType,
		"channel", req.Session.ChannelID,
		"message_summary", summarize(req.Message),
		"error", err,
	}
	switch kind {
	case api.KindValidation, api.KindUnknownAgentType:
		slog.WarnContext(ctx, "Chat rejected", attrs...)
	default:
		slog.ErrorContext(ctx, "Chat failed", attrs...)
	}
}

// summarize truncates a message for log output.
func summarize(message string) string {
	const limit = 80
	if len(message) <= limit {
		return message
	}
	return message[:limit] + "..."
}
