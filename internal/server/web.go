package server

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/sip"
)

// WebServerConfig holds configuration for the browser terminal server.
type WebServerConfig struct {
	Host string
	Port string

	NewModel       ModelFactory
	ProgramOptions []tea.ProgramOption
	Logger         *log.Logger
}

// StartWebServer serves one desktop per browser session until ctx is
// cancelled.
func StartWebServer(ctx context.Context, cfg *WebServerConfig) error {
	if cfg.NewModel == nil {
		return errors.New("web server needs a model factory")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	sipCfg := sip.DefaultConfig()
	if cfg.Host != "" {
		sipCfg.Host = cfg.Host
	}
	if cfg.Port != "" {
		sipCfg.Port = cfg.Port
	}

	logger.Info("Starting web server", "addr", fmt.Sprintf("http://%s:%s", sipCfg.Host, sipCfg.Port))
	server := sip.NewServer(sipCfg)
	err := server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		pty := sess.Pty()
		model := cfg.NewModel(pty.Width, pty.Height)
		logger.Info("Browser session started", "size", fmt.Sprintf("%dx%d", pty.Width, pty.Height))

		go func() {
			<-sess.Context().Done()
			if c, ok := model.(cleaner); ok {
				c.Cleanup()
			}
			logger.Info("Browser session ended")
		}()

		return model, cfg.ProgramOptions
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
