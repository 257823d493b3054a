package echo

import (
	"context"
	"testing"

	"adk/pkg/api"
	"adk/pkg/config"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoIdentity(t *testing.T) {
	ag := NewEchoAgent("test-echo", "echo agent")
	require.NoError(t, ag.Initialize(context.Background()))

	messages := []string{
		"Hello!",
		"multi\nline\ninput",
		"unicode: 日本語 émoji 🚀",
		" leading and trailing spaces ",
	}
	for _, m := range messages {
		got, err := ag.ProcessMessage(context.Background(), m, nil)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestEchoContextPassedThroughUninterpreted(t *testing.T) {
	ag := NewEchoAgent("test-echo", "echo agent")
	require.NoError(t, ag.Initialize(context.Background()))

	got, err := ag.ProcessMessage(context.Background(), "hi", map[string]any{
		"user_id": "u-1",
		"session": map[string]any{"nested": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", got, "context must not alter the response")
}

func TestEchoEmptyMessage(t *testing.T) {
	ag := NewEchoAgent("test-echo", "echo agent")
	require.NoError(t, ag.Initialize(context.Background()))

	_, err := ag.ProcessMessage(context.Background(), "", nil)
	require.Error(t, err)
	assert.Equal(t, api.KindValidation, api.KindOf(err))
}

func TestEchoInitializeIdempotent(t *testing.T) {
	ag := NewEchoAgent("test-echo", "echo agent")

	require.NoError(t, ag.Initialize(context.Background()))
	require.NoError(t, ag.Initialize(context.Background()))
	assert.True(t, ag.Initialized())
}

func TestEchoFactoryDefaults(t *testing.T) {
	sys := config.DefaultSystemConfig()

	ag, err := (&EchoFactory{}).Create(nil, sys)
	require.NoError(t, err)
	assert.Equal(t, sys.AgentName, ag.Name())
}

func TestEchoFactoryConfigOverride(t *testing.T) {
	raw := jsoniter.RawMessage(`{"name":"server-echo","description":"wired"}`)

	ag, err := (&EchoFactory{}).Create(raw, config.DefaultSystemConfig())
	require.NoError(t, err)
	assert.Equal(t, "server-echo", ag.Name())
	assert.Equal(t, "wired", ag.Describe().Description)
}
