package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"adk/pkg/api"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for decoupled UI
	},
}

// WebConfig holds the HTTP server settings for the web channel.
type WebConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"` // Default: 8000
}

// chatPayload is the wire shape of POST /chat and websocket chat frames.
type chatPayload struct {
	Message   string         `json:"message"`
	AgentType string         `json:"agent_type"`
	Context   map[string]any `json:"context,omitempty"`
}

// errorPayload is the wire shape of every error response.
type errorPayload struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// SafeConn serializes writes to a websocket connection.
type SafeConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (sc *SafeConn) WriteMessage(messageType int, data []byte) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.Conn.WriteMessage(messageType, data)
}

// WebChannel exposes the dispatcher over HTTP: POST /chat and GET /health
// plus the supporting GET /agents listing and a websocket chat endpoint.
type WebChannel struct {
	config     WebConfig
	server     *http.Server
	directory  api.AgentDirectory
	dispatcher api.Dispatcher

	connections map[string]*SafeConn // Map UserID -> WS Connection
	mu          sync.RWMutex
}

// NewWebChannel creates the web channel. The dispatcher arrives at Start.
func NewWebChannel(cfg WebConfig, directory api.AgentDirectory) *WebChannel {
	return &WebChannel{
		config:      cfg,
		directory:   directory,
		connections: make(map[string]*SafeConn),
	}
}

// ID implements api.Channel.
func (c *WebChannel) ID() string {
	return "web"
}

// Start implements api.Channel. It serves in a background goroutine; a
// listen failure after startup is logged, not returned.
func (c *WebChannel) Start(dispatcher api.Dispatcher) error {
	c.dispatcher = dispatcher

	addr := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)
	c.server = &http.Server{
		Addr:    addr,
		Handler: c.Handler(),
	}

	slog.Info("Web API listening", "host", c.config.Host, "port", c.config.Port)

	go func() {
		if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Web API server error", "error", err)
		}
	}()

	return nil
}

// Stop implements api.Channel.
func (c *WebChannel) Stop() error {
	if c.server != nil {
		return c.server.Close()
	}
	return nil
}

// Handler builds the channel's HTTP routes. Exposed for tests.
func (c *WebChannel) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", c.handleChat)
	mux.HandleFunc("GET /health", c.handleHealth)
	mux.HandleFunc("GET /agents", c.handleAgents)
	mux.HandleFunc("/ws", c.handleWebSocket)
	return mux
}

func (c *WebChannel) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, api.ValidationError("request body is not valid JSON: %v", err))
		return
	}

	req := &api.ChatRequest{
		Message:   payload.Message,
		AgentType: payload.AgentType,
		Context:   payload.Context,
		Session: api.SessionContext{
			ChannelID: c.ID(),
			UserID:    r.RemoteAddr,
			Username:  "WebUser",
		},
	}

	resp, err := c.dispatcher.HandleChat(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (c *WebChannel) handleHealth(w http.ResponseWriter, r *http.Request) {
	// Liveness only. No dependency checks beyond process liveness.
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (c *WebChannel) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"available_agents":   c.directory.AvailableTags(),
		"initialized_agents": c.directory.InitializedAgents(),
	})
}

func (c *WebChannel) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WS Upgrade failed", "error", err)
		return
	}

	conn := &SafeConn{Conn: rawConn}
	userID := r.RemoteAddr

	c.mu.Lock()
	c.connections[userID] = conn
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.connections, userID)
		c.mu.Unlock()
		conn.Close()
	}()

	session := api.SessionContext{
		ChannelID: c.ID(),
		UserID:    userID,
		Username:  "WebUser",
	}

	for {
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			break
		}

		// Try to parse as a JSON chat frame; fall back to plain text.
		var payload chatPayload
		if err := json.Unmarshal(msgBytes, &payload); err != nil || payload.Message == "" {
			payload = chatPayload{Message: string(msgBytes)}
		}

		req := &api.ChatRequest{
			Message:   payload.Message,
			AgentType: payload.AgentType,
			Context:   payload.Context,
			Session:   session,
		}

		resp, err := c.dispatcher.HandleChat(r.Context(), req)
		if err != nil {
			frame, _ := json.Marshal(map[string]string{
				"type":  "error",
				"error": err.Error(),
				"kind":  string(api.KindOf(err)),
			})
			if writeErr := conn.WriteMessage(websocket.TextMessage, frame); writeErr != nil {
				break
			}
			continue
		}

		frame, _ := json.Marshal(map[string]string{
			"type":       "response",
			"response":   resp.Response,
			"agent_name": resp.AgentName,
			"agent_type": resp.AgentType,
		})
		if writeErr := conn.WriteMessage(websocket.TextMessage, frame); writeErr != nil {
			break
		}
	}
}

// statusFor maps an error kind to its HTTP status. Validation and unknown
// agent type are client faults; initialization is a server fault; upstream
// failures surface as a bad gateway.
func statusFor(kind api.ErrorKind) int {
	switch kind {
	case api.KindValidation, api.KindUnknownAgentType:
		return http.StatusBadRequest
	case api.KindInitialization:
		return http.StatusInternalServerError
	case api.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := api.KindOf(err)
	writeJSON(w, statusFor(kind), errorPayload{
		Error: err.Error(),
		Kind:  string(kind),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
