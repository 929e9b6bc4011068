package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/winnux/internal/config"
	"github.com/Gaurav-Gosain/winnux/internal/server"
	"github.com/Gaurav-Gosain/winnux/internal/tape"
	"github.com/Gaurav-Gosain/winnux/pkg/winnux"
)

// newLogger returns the process logger. It writes to stderr so stdout stays
// free for the TUI and the MCP stdio transport.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "winnux",
	})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	return logger
}

func loadUserConfig(logger *log.Logger) *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("Failed to load config, using defaults", "err", err)
		return config.DefaultConfig()
	}
	if debugMode {
		configPath, _ := config.GetConfigPath()
		logger.Debug("Configuration", "path", configPath)
	}
	return userConfig
}

// desktopOptions turns the global flags into model options.
func desktopOptions(userConfig *config.UserConfig, logger *log.Logger) []winnux.Option {
	return []winnux.Option{
		winnux.WithUserConfig(userConfig),
		winnux.WithLogger(logger),
		winnux.WithTheme(themeName),
		winnux.WithAssistant(assistantProvider),
		winnux.WithASCIIOnly(asciiOnly),
		winnux.WithBorderStyle(borderStyle),
		winnux.WithTaskbarPosition(taskbarPosition),
		winnux.WithHideWindowButtons(hideWindowButtons),
		winnux.WithOpen(openApps...),
	}
}

// sessionFactory builds a desktop per remote session.
func sessionFactory(userConfig *config.UserConfig, logger *log.Logger) server.ModelFactory {
	opts := desktopOptions(userConfig, logger)
	return func(width, height int) tea.Model {
		return winnux.New(append(opts, winnux.WithSize(width, height))...)
	}
}

func runLocal() error {
	logger := newLogger()
	userConfig := loadUserConfig(logger)
	return runProgram(winnux.New(desktopOptions(userConfig, logger)...))
}

// runProgram runs model full screen and releases it afterwards.
func runProgram(model *winnux.Model) error {
	p := tea.NewProgram(
		model,
		append(winnux.ProgramOptions(), tea.WithoutSignalHandler())...,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.QuitMsg{})
		}
	}()

	finalModel, err := p.Run()

	if final, ok := finalModel.(*winnux.Model); ok {
		final.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext(logger *log.Logger, what string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			logger.Info("Shutting down " + what)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()
	return ctx, cancel
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	logger := newLogger()
	userConfig := loadUserConfig(logger)

	cfg := &server.SSHServerConfig{
		Host:           firstNonEmpty(sshHost, userConfig.Server.SSHHost),
		Port:           firstNonEmpty(sshPort, userConfig.Server.SSHPort),
		KeyPath:        firstNonEmpty(sshKeyPath, userConfig.Server.SSHKeyPath),
		Version:        version,
		NewModel:       sessionFactory(userConfig, logger),
		ProgramOptions: winnux.ProgramOptions(),
		Logger:         logger,
	}

	ctx, cancel := signalContext(logger, "SSH server")
	defer cancel()
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(webHost, webPort string) error {
	logger := newLogger()
	userConfig := loadUserConfig(logger)

	cfg := &server.WebServerConfig{
		Host:           webHost,
		Port:           webPort,
		NewModel:       sessionFactory(userConfig, logger),
		ProgramOptions: winnux.ProgramOptions(),
		Logger:         logger,
	}

	ctx, cancel := signalContext(logger, "web server")
	defer cancel()
	return server.StartWebServer(ctx, cfg)
}

func runMCPServer(transport string, port, width, height int) error {
	logger := newLogger()
	userConfig := loadUserConfig(logger)

	if transport == "" {
		transport = userConfig.Server.MCPTransport
	}
	if port == 0 {
		port = userConfig.Server.MCPPort
	}

	desk := winnux.New(append(desktopOptions(userConfig, logger), winnux.WithSize(width, height))...)
	defer desk.Cleanup()

	s := server.NewMCPServer(desk, version, logger)
	if err := s.Serve(transport, port); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

func runTapeInteractive(path string) error {
	logger := newLogger()
	commands, err := tape.Load(path)
	if err != nil {
		return err
	}
	userConfig := loadUserConfig(logger)

	model := winnux.New(desktopOptions(userConfig, logger)...)
	model.QueueScript(commands)
	return runProgram(model)
}

func validateTapeFile(path string) error {
	commands, err := tape.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d command(s), OK\n", path, len(commands))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
