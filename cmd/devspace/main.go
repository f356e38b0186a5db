// Package main implements devspace, a developer dashboard for the terminal.
// Notes, todos, an HTTP client, a password vault and data tools open as
// floating cards that can be dragged and resized with the mouse.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/devspace-tui/devspace/internal/theme"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode    bool
	asciiOnly    bool
	themeName    string
	listThemes   bool
	borderStyle  string
	dockPosition string
	hideClock    bool
	hideStats    bool
	storagePath  string
	inMemory     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "devspace",
		Short: "Developer dashboard for the terminal",
		Long: `devspace - Developer Dashboard

Daily notes, a todo list, an HTTP client, a password vault and data
import/export, each in a floating card you can drag by its title bar and
resize from its edges. Everything is saved to a local sqlite database.`,
		Example: `  # Run devspace
  devspace

  # Run without Nerd Font icons
  devspace --ascii-only

  # Run with a specific theme
  devspace --theme dracula

  # List all available themes
  devspace --list-themes

  # Try it out without touching your data
  devspace --in-memory

  # Serve over SSH or in the browser
  devspace ssh --port 2222
  devspace web --port 7681

  # Back up everything
  devspace data export -o backup.json`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listThemes {
				if err := theme.Initialize("default"); err != nil {
					return fmt.Errorf("failed to initialize themes: %w", err)
				}
				for _, t := range theme.IDs() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Nerd Font icons")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Card border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&dockPosition, "dock-position", "", "Dock position: bottom, top (default: from config or bottom)")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the clock in the dock")
	rootCmd.PersistentFlags().BoolVar(&hideStats, "hide-stats", false, "Hide the CPU and memory readout in the dock")
	rootCmd.PersistentFlags().StringVar(&storagePath, "db", "", "Path to the sqlite database (default: from config or $XDG_DATA_HOME/devspace/devspace.db)")
	rootCmd.PersistentFlags().BoolVar(&inMemory, "in-memory", false, "Keep all data in memory; nothing is saved")

	var sshPort, sshHost, sshKeyPath string
	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run devspace as SSH server",
		Long: `Run devspace as an SSH server

Every connection gets its own desk backed by the same database. The server
generates a host key automatically if not specified.`,
		Example: `  # Start SSH server on default port
  devspace ssh

  # Start on custom port
  devspace ssh --port 2222

  # Specify custom host key
  devspace ssh --key-path /path/to/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}
	sshCmd.Flags().StringVar(&sshPort, "port", "2222", "SSH server port")
	sshCmd.Flags().StringVar(&sshHost, "host", "localhost", "SSH server host")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if not specified)")

	var web webFlags
	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve devspace in the browser",
		Long: `Serve devspace in the browser

Uses WebTransport where available and falls back to WebSocket. Every
browser tab gets its own desk backed by the same database.`,
		Example: `  # Start web server on default port (7681)
  devspace web

  # Bind to all interfaces for remote access
  devspace web --host 0.0.0.0

  # Limit concurrent connections
  devspace web --max-connections 10`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWebServer(web)
		},
	}
	webCmd.Flags().StringVar(&web.port, "port", "7681", "Web server port")
	webCmd.Flags().StringVar(&web.host, "host", "localhost", "Web server host")
	webCmd.Flags().BoolVar(&web.readOnly, "read-only", false, "Disable input from clients (view only)")
	webCmd.Flags().IntVar(&web.maxConnections, "max-connections", 0, "Maximum concurrent connections (0 = unlimited)")
	webCmd.Flags().StringVar(&web.tlsCert, "tls-cert", "", "TLS certificate file")
	webCmd.Flags().StringVar(&web.tlsKey, "tls-key", "", "TLS private key file")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage devspace configuration",
		Long:  `Manage devspace configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the devspace configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the devspace configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the devspace configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")

	configValidateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		Long:  `Load the configuration file and report errors and warnings`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return validateConfigFile()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configValidateCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "List all keybindings",
		Long:    `Display all keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Export, import or clear saved data",
		Long: `Move notes, todos, saved requests and passwords in and out of the
database as a single JSON document. The document matches the one the data
card exports.`,
	}

	var exportOut string
	dataExportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write all data as JSON",
		Example: `  # Print to stdout
  devspace data export

  # Write to a file
  devspace data export -o backup.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return exportData(cmd.Context(), exportOut)
		},
	}
	dataExportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (default: stdout)")

	dataImportCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data from a JSON export",
		Long: `Replace notes, todos, saved requests and passwords with the contents
of an export document. Use - to read from stdin. Nothing is written unless
the whole document is valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importData(cmd.Context(), args[0])
		},
	}

	var clearYes bool
	dataClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return clearData(cmd.Context(), clearYes)
		},
	}
	dataClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Do not ask for confirmation")

	dataCmd.AddCommand(dataExportCmd, dataImportCmd, dataClearCmd)

	rootCmd.AddCommand(sshCmd, webCmd, configCmd, keybindsCmd, dataCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
