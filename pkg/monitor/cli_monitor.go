package monitor

import (
	"fmt"
	"io"
	"os"
)

// CLIMonitor implements Monitor by printing every message crossing the
// gateway to the terminal: incoming user messages tagged with their channel
// and username, replies tagged with the agent type that produced them.
type CLIMonitor struct {
	writer io.Writer
}

// NewCLIMonitor creates a monitor writing to stdout.
func NewCLIMonitor() *CLIMonitor {
	return &CLIMonitor{writer: os.Stdout}
}

// Start implements Monitor.
func (m *CLIMonitor) Start() error {
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	fmt.Fprintln(m.writer, "💬 Traffic monitor active - chat messages from all channels appear here")
	fmt.Fprintln(m.writer, "----------------------------------------------------------------")
	return nil
}

// Stop implements Monitor.
func (m *CLIMonitor) Stop() error {
	return nil
}

// OnMessage implements Monitor.
func (m *CLIMonitor) OnMessage(msg MonitorMessage) {
	timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")

	var origin string
	if msg.MessageType == "ASSISTANT" {
		origin = msg.AgentType
	} else {
		origin = fmt.Sprintf("%s/%s", msg.ChannelID, msg.Username)
	}

	// Gray timestamp so the message itself stands out.
	fmt.Fprintf(m.writer, "\033[90m[%s]\033[0m [%s] %s\n", timestamp, origin, msg.Content)
}
