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

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host        string
	Port        string
	KeyPath     string // empty means $XDG_DATA_HOME/devspace/ssh_host_ed25519
	IdleTimeout time.Duration
	Logger      *log.Logger
	NewDesk     DeskFactory
}

// HostKeyPath returns the configured host key, resolving the default.
func (c *SSHServerConfig) HostKeyPath() (string, error) {
	if c.KeyPath != "" {
		return c.KeyPath, nil
	}
	path, err := xdg.DataFile("devspace/ssh_host_ed25519")
	if err != nil {
		return "", fmt.Errorf("failed to get host key path: %w", err)
	}
	return path, nil
}

// StartSSHServer runs the SSH server until ctx is cancelled.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	if cfg.NewDesk == nil {
		return errNoFactory
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	hostKeyPath, err := cfg.HostKeyPath()
	if err != nil {
		return err
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithProgramHandler(sshProgramHandler(cfg.NewDesk, logger)),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}
	srv, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", srv.Addr, "host-key", hostKeyPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("SSH server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// sshProgramHandler creates a desk sized to the session's pty.
func sshProgramHandler(newDesk DeskFactory, logger *log.Logger) bubbletea.ProgramHandler {
	return func(sess ssh.Session) *tea.Program {
		pty, _, active := sess.Pty()
		if !active {
			return nil
		}
		d, err := newDesk(pty.Window.Width, pty.Window.Height)
		if err != nil {
			logger.Error("failed to create desk", "user", sess.User(), "err", err)
			wish.Fatalln(sess, "devspace: "+err.Error())
			return nil
		}
		opts := append(bubbletea.MakeOptions(sess), programOptions()...)
		return tea.NewProgram(d, opts...)
	}
}
