package agent

import (
	"context"
	"testing"

	"adk/pkg/api"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgent struct {
	Base
}

func (a *stubAgent) Initialize(ctx context.Context) error {
	a.MarkInitialized()
	return nil
}

func (a *stubAgent) ProcessMessage(ctx context.Context, message string, msgContext map[string]any) (string, error) {
	return message, nil
}

type stubFactory struct {
	label string
}

func (f *stubFactory) Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (api.Agent, error) {
	return &stubAgent{Base: NewBase(f.label, "stub")}, nil
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register("x", &stubFactory{label: "first"})

	factory, err := reg.Resolve("x")
	require.NoError(t, err)

	ag, err := factory.Create(nil, config.DefaultSystemConfig())
	require.NoError(t, err)
	assert.Equal(t, "first", ag.Name())
}

func TestRegistryOverwrite(t *testing.T) {
	reg := NewRegistry()
	reg.Register("x", &stubFactory{label: "first"})
	reg.Register("x", &stubFactory{label: "second"})

	factory, err := reg.Resolve("x")
	require.NoError(t, err)

	ag, err := factory.Create(nil, config.DefaultSystemConfig())
	require.NoError(t, err)
	assert.Equal(t, "second", ag.Name(), "last registration for a tag wins")
}

func TestRegistryResolveUnknown(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Resolve("nonexistent")
	require.Error(t, err)
	assert.Equal(t, api.KindUnknownAgentType, api.KindOf(err))
}

func TestRegistryTags(t *testing.T) {
	reg := NewRegistry()
	reg.Register("vertex", &stubFactory{})
	reg.Register("echo", &stubFactory{})
	reg.Register("ollama", &stubFactory{})

	assert.Equal(t, []string{"echo", "ollama", "vertex"}, reg.Tags())
}

func TestBaseLifecycle(t *testing.T) {
	ag := &stubAgent{Base: NewBase("test-agent", "a stub")}

	info := ag.Describe()
	assert.Equal(t, "uninitialized", info.Status)
	assert.Equal(t, "test-agent", info.Name)

	require.NoError(t, ag.Initialize(context.Background()))
	require.NoError(t, ag.Initialize(context.Background()), "initialize is idempotent in effect")

	info = ag.Describe()
	assert.Equal(t, "healthy", info.Status)
	assert.True(t, ag.Initialized())
}
