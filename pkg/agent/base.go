package agent

import (
	"sync/atomic"

	"adk/pkg/api"
)

// Base bundles the identity and lifecycle state shared by every agent
// variant. Embed it in concrete implementations and supply Initialize and
// ProcessMessage to satisfy the api.Agent interface.
//
// The lifecycle is two-state: an agent starts uninitialized and becomes
// ready once MarkInitialized is called. There is no teardown state; the
// agent lives as long as the owning dispatcher.
type Base struct {
	name        string
	description string
	initialized atomic.Bool
}

// NewBase constructs the shared agent state with the given identity.
func NewBase(name, description string) Base {
	return Base{
		name:        name,
		description: description,
	}
}

// Name returns the human-readable name for this agent.
func (b *Base) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *Base) Description() string { return b.description }

// Initialized reports whether the agent has completed setup.
func (b *Base) Initialized() bool { return b.initialized.Load() }

// MarkInitialized transitions the agent to the ready state. Calling it
// again leaves the agent in the same ready state.
func (b *Base) MarkInitialized() { b.initialized.Store(true) }

// Describe reports the agent's identity and readiness for the listing endpoint.
func (b *Base) Describe() api.AgentInfo {
	status := "uninitialized"
	if b.Initialized() {
		status = "healthy"
	}
	return api.AgentInfo{
		Status:      status,
		Name:        b.name,
		Description: b.description,
	}
}
