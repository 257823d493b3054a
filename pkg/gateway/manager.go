package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"adk/pkg/api"
	"adk/pkg/monitor"
)

// GatewayManager owns all registered channels and routes their traffic
// through the chat dispatcher. It implements api.Dispatcher itself so
// channels see a single entry point; the manager adds monitoring broadcast
// around the inner dispatcher and nothing else.
type GatewayManager struct {
	channels   map[string]api.Channel
	dispatcher api.Dispatcher
	monitor    monitor.Monitor
	mu         sync.RWMutex
}

// NewGatewayManager creates an empty GatewayManager.
func NewGatewayManager() *GatewayManager {
	return &GatewayManager{
		channels: make(map[string]api.Channel),
	}
}

// SetDispatcher sets the core chat dispatcher all channel traffic is routed to.
func (g *GatewayManager) SetDispatcher(d api.Dispatcher) {
	g.dispatcher = d
}

// SetMonitor sets the traffic monitor.
func (g *GatewayManager) SetMonitor(m monitor.Monitor) {
	g.monitor = m
}

// Register registers a channel.
func (g *GatewayManager) Register(c api.Channel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.channels[c.ID()] = c
}

// GetChannel returns a specific channel by id.
func (g *GatewayManager) GetChannel(id string) (api.Channel, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.channels[id]
	return c, ok
}

// StartAll starts every registered channel, handing each the manager as its
// dispatcher.
func (g *GatewayManager) StartAll() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for id, c := range g.channels {
		slog.Info("Starting channel", "channel", id)
		if err := c.Start(g); err != nil {
			return fmt.Errorf("failed to start channel %s: %w", id, err)
		}
	}
	return nil
}

// StopAll stops all channels.
func (g *GatewayManager) StopAll() {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for id, c := range g.channels {
		slog.Info("Stopping channel", "channel", id)
		if err := c.Stop(); err != nil {
			slog.Error("Error stopping channel", "channel", id, "error", err)
		}
	}
}

// HandleChat implements api.Dispatcher. Incoming and outgoing traffic is
// broadcast to the monitor; errors pass through untouched.
func (g *GatewayManager) HandleChat(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	if g.monitor != nil {
		g.monitor.OnMessage(monitor.MonitorMessage{
			Timestamp:   time.Now(),
			MessageType: "USER",
			ChannelID:   req.Session.ChannelID,
			AgentType:   req.AgentType,
			Username:    req.Session.Username,
			Content:     req.Message,
		})
	}

	if g.dispatcher == nil {
		slog.Warn("No dispatcher set on gateway", "channel", req.Session.ChannelID)
		return nil, api.UpstreamError(nil, "gateway has no dispatcher")
	}

	resp, err := g.dispatcher.HandleChat(ctx, req)
	if err != nil {
		return nil, err
	}

	if g.monitor != nil {
		g.monitor.OnMessage(monitor.MonitorMessage{
			Timestamp:   time.Now(),
			MessageType: "ASSISTANT",
			ChannelID:   req.Session.ChannelID,
			AgentType:   resp.AgentType,
			Username:    req.Session.Username,
			Content:     resp.Response,
		})
	}
	return resp, nil
}
