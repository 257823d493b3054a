package gateway

import (
	"context"
	"errors"
	"testing"

	"adk/pkg/api"
	"adk/pkg/monitor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMonitor struct {
	started  bool
	stopped  bool
	messages []monitor.MonitorMessage
}

func (m *recordingMonitor) Start() error { m.started = true; return nil }
func (m *recordingMonitor) Stop() error  { m.stopped = true; return nil }
func (m *recordingMonitor) OnMessage(msg monitor.MonitorMessage) {
	m.messages = append(m.messages, msg)
}

type echoDispatcher struct {
	err error
}

func (d *echoDispatcher) HandleChat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &api.ChatResponse{Response: req.Message, AgentName: "e", AgentType: "echo"}, nil
}

type stubChannel struct {
	id         string
	started    bool
	stopped    bool
	dispatcher api.Dispatcher
}

func (c *stubChannel) ID() string { return c.id }
func (c *stubChannel) Start(d api.Dispatcher) error {
	c.started = true
	c.dispatcher = d
	return nil
}
func (c *stubChannel) Stop() error { c.stopped = true; return nil }

func TestHandleChatBroadcastsBothDirections(t *testing.T) {
	mon := &recordingMonitor{}
	gw := NewGatewayManager()
	gw.SetDispatcher(&echoDispatcher{})
	gw.SetMonitor(mon)

	resp, err := gw.HandleChat(context.Background(), &api.ChatRequest{
		Message:   "Hello!",
		AgentType: "echo",
		Session:   api.SessionContext{ChannelID: "web", Username: "u"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Response)

	require.Len(t, mon.messages, 2)
	assert.Equal(t, "USER", mon.messages[0].MessageType)
	assert.Equal(t, "Hello!", mon.messages[0].Content)
	assert.Equal(t, "ASSISTANT", mon.messages[1].MessageType)
	assert.Equal(t, "Hello!", mon.messages[1].Content)
	assert.Equal(t, "web", mon.messages[1].ChannelID)
}

func TestHandleChatErrorSkipsAssistantBroadcast(t *testing.T) {
	mon := &recordingMonitor{}
	boom := api.UpstreamError(errors.New("quota"), "call failed")
	gw := NewGatewayManager()
	gw.SetDispatcher(&echoDispatcher{err: boom})
	gw.SetMonitor(mon)

	_, err := gw.HandleChat(context.Background(), &api.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Same(t, boom, err, "dispatcher errors pass through untouched")

	require.Len(t, mon.messages, 1)
	assert.Equal(t, "USER", mon.messages[0].MessageType)
}

func TestHandleChatWithoutDispatcher(t *testing.T) {
	gw := NewGatewayManager()

	_, err := gw.HandleChat(context.Background(), &api.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Equal(t, api.KindUpstream, api.KindOf(err))
}

func TestBuilderWiresAndStartsEverything(t *testing.T) {
	mon := &recordingMonitor{}
	ch := &stubChannel{id: "web"}

	gw, err := NewGatewayBuilder().
		WithMonitor(mon).
		WithDispatcher(&echoDispatcher{}).
		WithChannel(ch).
		Build()
	require.NoError(t, err)

	assert.True(t, mon.started)
	assert.True(t, ch.started)
	assert.Same(t, gw, ch.dispatcher, "channels route through the gateway")

	got, ok := gw.GetChannel("web")
	require.True(t, ok)
	assert.Same(t, ch, got)

	gw.StopAll()
	assert.True(t, ch.stopped)
}

func TestBuilderRequiresDispatcher(t *testing.T) {
	_, err := NewGatewayBuilder().Build()
	require.Error(t, err)
}
