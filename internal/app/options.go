package app

import (
	"github.com/devspace-tui/devspace/internal/config"
	"github.com/devspace-tui/devspace/internal/widget/httpclient"
)

// OptionsFromConfig maps the user configuration onto desk options. Store,
// Logger and the terminal size are left for the caller.
func OptionsFromConfig(cfg *config.UserConfig) Options {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Options{
		Window: cfg.Window,
		HTTP: httpclient.ClientConfig{
			Timeout:   cfg.HTTP.TimeoutDuration(),
			Retries:   cfg.HTTP.Retries,
			UserAgent: cfg.HTTP.UserAgent,
		},
		Cipher:      cfg.Vault.Cipher,
		SystemStats: !cfg.Appearance.HideStats,
	}
}
