package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"adk/pkg/agent"
	"adk/pkg/agent/echo"
	"adk/pkg/agent/ollama"
	"adk/pkg/agent/openailm"
	"adk/pkg/agent/vertex"
	"adk/pkg/channels"
	_ "adk/pkg/channels/autoload" // Registers built-in channel factories
	"adk/pkg/config"
	"adk/pkg/gateway"
	"adk/pkg/handler"
	"adk/pkg/monitor"
)

func main() {
	// --- 0. Configuration ---
	cfg, sysCfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v\n", err)
	}

	monitor.SetupSlog(sysCfg.LogLevel)
	monitor.PrintBanner()

	// --- 1. Agent registry ---
	// Built-in variants are registered explicitly; embedding code can add or
	// replace entries here before the dispatcher starts taking traffic.
	registry := agent.NewRegistry()
	registry.Register("echo", &echo.EchoFactory{})
	registry.Register("vertex", &vertex.VertexFactory{})
	registry.Register("openai", &openailm.OpenAIFactory{})
	registry.Register("ollama", &ollama.OllamaFactory{})

	// --- 2. Dispatcher ---
	dispatcher := handler.NewChatDispatcher(registry, cfg, sysCfg)

	// --- 3. Channels + Gateway ---
	chs := channels.CreateFromConfig(cfg.Channels, dispatcher, sysCfg)

	gw, err := gateway.NewGatewayBuilder().
		WithMonitor(monitor.NewCLIMonitor()).
		WithDispatcher(dispatcher).
		WithChannel(chs...).
		Build()
	if err != nil {
		log.Fatalf("❌ Failed to build gateway: %v\n", err)
	}

	// --- 4. Hot-reload for system settings ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloadCh := config.WatchConfig(ctx, "system.json")
	go func() {
		for range reloadCh {
			fresh := config.LoadSystemConfig("system.json")
			monitor.SetupSlog(fresh.LogLevel)
			slog.Info("Reloaded system configuration", "log_level", fresh.LogLevel)
		}
	}()

	slog.Info("Agent server running", "agents", registry.Tags(), "default_agent", cfg.DefaultAgent)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("Received shutdown signal. Stopping services...")
	gw.StopAll()
	slog.Info("Bye!")
}
