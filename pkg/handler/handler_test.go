package handler

import (
	"context"
	"errors"
	"testing"

	"adk/pkg/agent"
	"adk/pkg/api"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	name         string
	initErr      error
	processErr   error
	initCalls    int
	processCalls int
	initialized  bool

	// processedUninitialized records a contract violation: ProcessMessage
	// invoked before Initialize succeeded.
	processedUninitialized bool
}

func (a *fakeAgent) Name() string { return a.name }

func (a *fakeAgent) Initialize(ctx context.Context) error {
	a.initCalls++
	if a.initErr != nil {
		return a.initErr
	}
	a.initialized = true
	return nil
}

func (a *fakeAgent) ProcessMessage(ctx context.Context, message string, msgContext map[string]any) (string, error) {
	a.processCalls++
	if !a.initialized {
		a.processedUninitialized = true
	}
	if a.processErr != nil {
		return "", a.processErr
	}
	return message, nil
}

func (a *fakeAgent) Describe() api.AgentInfo {
	status := "uninitialized"
	if a.initialized {
		status = "healthy"
	}
	return api.AgentInfo{Status: status, Name: a.name}
}

type fakeFactory struct {
	agent       *fakeAgent
	createErr   error
	createCalls int
}

func (f *fakeFactory) Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (api.Agent, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.agent, nil
}

func newDispatcher(t *testing.T, defaultAgent string, factories map[string]agent.Factory) *ChatDispatcher {
	t.Helper()

	reg := agent.NewRegistry()
	for tag, f := range factories {
		reg.Register(tag, f)
	}

	cfg := &config.Config{
		Agents:       map[string]jsoniter.RawMessage{},
		Channels:     map[string]jsoniter.RawMessage{},
		DefaultAgent: defaultAgent,
	}
	return NewChatDispatcher(reg, cfg, config.DefaultSystemConfig())
}

func TestHandleChatSuccess(t *testing.T) {
	fa := &fakeAgent{name: "fake-echo"}
	factory := &fakeFactory{agent: fa}
	d := newDispatcher(t, "", map[string]agent.Factory{"echo": factory})

	resp, err := d.HandleChat(context.Background(), &api.ChatRequest{
		Message:   "Hello!",
		AgentType: "echo",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello!", resp.Response)
	assert.Equal(t, "fake-echo", resp.AgentName)
	assert.Equal(t, "echo", resp.AgentType)
	assert.False(t, fa.processedUninitialized, "dispatcher must initialize before first use")
	assert.Equal(t, 1, fa.initCalls)
}

func TestHandleChatCachesInstancePerTag(t *testing.T) {
	fa := &fakeAgent{name: "fake-echo"}
	factory := &fakeFactory{agent: fa}
	d := newDispatcher(t, "", map[string]agent.Factory{"echo": factory})

	for i := 0; i < 3; i++ {
		_, err := d.HandleChat(context.Background(), &api.ChatRequest{Message: "hi", AgentType: "echo"})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, factory.createCalls, "one instance per tag, created on first use")
	assert.Equal(t, 1, fa.initCalls, "initialize runs once per cached instance")
	assert.Equal(t, 3, fa.processCalls)
}

func TestHandleChatEmptyMessage(t *testing.T) {
	factory := &fakeFactory{agent: &fakeAgent{name: "fake-echo"}}
	d := newDispatcher(t, "", map[string]agent.Factory{"echo": factory})

	_, err := d.HandleChat(context.Background(), &api.ChatRequest{Message: "", AgentType: "echo"})
	require.Error(t, err)
	assert.Equal(t, api.KindValidation, api.KindOf(err))
	assert.Equal(t, 0, factory.createCalls, "no agent is invoked for an invalid request")
}

func TestHandleChatMissingAgentType(t *testing.T) {
	d := newDispatcher(t, "", map[string]agent.Factory{})

	_, err := d.HandleChat(context.Background(), &api.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, api.KindValidation, api.KindOf(err))
}

func TestHandleChatDefaultAgentFallback(t *testing.T) {
	fa := &fakeAgent{name: "fake-echo"}
	d := newDispatcher(t, "echo", map[string]agent.Factory{"echo": &fakeFactory{agent: fa}})

	resp, err := d.HandleChat(context.Background(), &api.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo", resp.AgentType)
}

func TestHandleChatUnknownAgentType(t *testing.T) {
	d := newDispatcher(t, "", map[string]agent.Factory{"echo": &fakeFactory{agent: &fakeAgent{}}})

	_, err := d.HandleChat(context.Background(), &api.ChatRequest{Message: "Hi", AgentType: "unknown"})
	require.Error(t, err)
	assert.Equal(t, api.KindUnknownAgentType, api.KindOf(err))
}

func TestHandleChatConstructionFailure(t *testing.T) {
	factory := &fakeFactory{createErr: errors.New("bad config")}
	d := newDispatcher(t, "", map[string]agent.Factory{"broken": factory})

	_, err := d.HandleChat(context.Background(), &api.ChatRequest{Message: "hi", AgentType: "broken"})
	require.Error(t, err)
	assert.Equal(t, api.KindInitialization, api.KindOf(err))
}

func TestHandleChatInitializationFailureNotCached(t *testing.T) {
	initErr := api.InitializationError(nil, "GOOGLE_CLOUD_PROJECT is not set")
	fa := &fakeAgent{name: "fake-vertex", initErr: initErr}
	factory := &fakeFactory{agent: fa}
	d := newDispatcher(t, "", map[string]agent.Factory{"vertex": factory})

	_, err := d.HandleChat(context.Background(), &api.ChatRequest{Message: "hi", AgentType: "vertex"})
	require.Error(t, err)
	assert.Equal(t, api.KindInitialization, api.KindOf(err))

	// The failed instance is not cached; a later request retries setup.
	_, err = d.HandleChat(context.Background(), &api.ChatRequest{Message: "hi", AgentType: "vertex"})
	require.Error(t, err)
	assert.Equal(t, 2, factory.createCalls)
	assert.Equal(t, 0, fa.processCalls, "a never-initialized agent must not process messages")
}

func TestHandleChatPropagatesAgentErrorUnmodified(t *testing.T) {
	upstream := api.UpstreamError(errors.New("quota exceeded"), "call failed")
	fa := &fakeAgent{name: "fake-vertex", processErr: upstream}
	d := newDispatcher(t, "", map[string]agent.Factory{"vertex": &fakeFactory{agent: fa}})

	_, err := d.HandleChat(context.Background(), &api.ChatRequest{Message: "hi", AgentType: "vertex"})
	require.Error(t, err)
	assert.Same(t, upstream, err, "agent errors propagate unmodified through the dispatcher")
}

func TestDirectory(t *testing.T) {
	fa := &fakeAgent{name: "fake-echo"}
	d := newDispatcher(t, "", map[string]agent.Factory{
		"echo":   &fakeFactory{agent: fa},
		"vertex": &fakeFactory{agent: &fakeAgent{name: "fake-vertex"}},
	})

	assert.Equal(t, []string{"echo", "vertex"}, d.AvailableTags())
	assert.Empty(t, d.InitializedAgents(), "no instances exist before first use")

	_, err := d.HandleChat(context.Background(), &api.ChatRequest{Message: "hi", AgentType: "echo"})
	require.NoError(t, err)

	infos := d.InitializedAgents()
	require.Len(t, infos, 1)
	assert.Equal(t, "healthy", infos["echo"].Status)
}
