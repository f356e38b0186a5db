package server

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/sip"
	"github.com/charmbracelet/colorprofile"
	siplog "github.com/charmbracelet/log"
)

// WebServerConfig holds configuration for the browser server.
type WebServerConfig struct {
	Host           string
	Port           string
	ReadOnly       bool
	MaxConnections int
	IdleTimeout    time.Duration
	TLSCert        string
	TLSKey         string
	Debug          bool
	Logger         *log.Logger
	NewDesk        DeskFactory
}

// StartWebServer serves the desk over WebSocket/WebTransport until ctx is
// cancelled.
func StartWebServer(ctx context.Context, cfg *WebServerConfig) error {
	if cfg.NewDesk == nil {
		return errNoFactory
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	// Stdout is not the client's terminal, so detection would strip colour.
	lipgloss.Writer.Profile = colorprofile.TrueColor
	if cfg.Debug {
		sip.SetLogLevel(siplog.DebugLevel)
	}

	sipCfg := sip.DefaultConfig()
	if cfg.Host != "" {
		sipCfg.Host = cfg.Host
	}
	if cfg.Port != "" {
		sipCfg.Port = cfg.Port
	}
	sipCfg.ReadOnly = cfg.ReadOnly
	sipCfg.MaxConnections = cfg.MaxConnections
	sipCfg.IdleTimeout = cfg.IdleTimeout
	sipCfg.TLSCert = cfg.TLSCert
	sipCfg.TLSKey = cfg.TLSKey
	sipCfg.Debug = cfg.Debug

	logger.Info("starting web server", "host", sipCfg.Host, "port", sipCfg.Port, "read-only", sipCfg.ReadOnly)
	return sip.NewServer(sipCfg).ServeWithProgram(ctx, webProgramHandler(cfg.NewDesk, logger))
}

func webProgramHandler(newDesk DeskFactory, logger *log.Logger) sip.ProgramHandler {
	return func(sess sip.Session) *tea.Program {
		pty := sess.Pty()
		d, err := newDesk(pty.Width, pty.Height)
		if err != nil {
			logger.Error("failed to create desk", "err", err)
			return nil
		}
		opts := append(sip.MakeOptions(sess), programOptions()...)
		return tea.NewProgram(d, opts...)
	}
}
