// Package server hosts the desktop outside the local terminal: one desktop
// per SSH or browser session, and a headless desktop driven over MCP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"
)

// ModelFactory builds a fresh desktop model for a session of the given size.
type ModelFactory func(width, height int) tea.Model

// cleaner is implemented by models that hold resources past program exit.
type cleaner interface {
	Cleanup()
}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	Version string

	NewModel       ModelFactory
	ProgramOptions []tea.ProgramOption
	Logger         *log.Logger
}

// defaultHostKey is the host key location relative to the XDG data home.
const defaultHostKey = "winnux/ssh_host_ed25519"

// shutdownTimeout bounds how long open sessions get to finish on shutdown.
const shutdownTimeout = 5 * time.Second

// StartSSHServer serves one desktop per SSH session until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	if cfg.NewModel == nil {
		return errors.New("ssh server needs a model factory")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	var err error
	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(cfg, logger)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	}
	keyPath := cfg.KeyPath
	if keyPath == "" {
		// wish generates the key on first start
		keyPath, err = xdg.DataFile(defaultHostKey)
		if err != nil {
			return fmt.Errorf("failed to locate host key: %w", err)
		}
	}
	opts = append(opts, wish.WithHostKeyPath(keyPath))

	srv, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting SSH server", "addr", srv.Addr, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("SSH server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("SSH shutdown: %w", err)
	}
	return nil
}

// sessionHandler builds the desktop for a new session, sized from its PTY.
func sessionHandler(cfg *SSHServerConfig, logger *log.Logger) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()
		model := cfg.NewModel(pty.Window.Width, pty.Window.Height)
		logger.Info("Session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height),
		)

		go func() {
			<-sess.Context().Done()
			if c, ok := model.(cleaner); ok {
				c.Cleanup()
			}
			logger.Info("Session ended", "user", sess.User())
		}()

		return model, cfg.ProgramOptions
	}
}
