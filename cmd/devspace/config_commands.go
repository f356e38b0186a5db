package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/devspace-tui/devspace/internal/config"
)

// printConfigPath prints the path to the configuration file
func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// editConfigFile opens the config file in $EDITOR
func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	// Ensure config file exists (create default if needed)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadUserConfig(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Please set $EDITOR environment variable")
	}

	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// confirm asks a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Print(prompt + " (yes/no): ")
	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "yes" || response == "y"
}

// resetConfigToDefaults resets the configuration file to default settings
func resetConfigToDefaults(yes bool) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil && !yes {
		fmt.Printf("Warning: This will overwrite your existing configuration at:\n")
		fmt.Printf("  %s\n\n", configPath)
		if !confirm("Are you sure you want to reset to defaults?") {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := config.ResetConfig(configPath); err != nil {
		return err
	}
	fmt.Printf("Configuration reset to defaults: %s\n", configPath)
	return nil
}

// validateConfigFile reports problems in the config file without changing it.
func validateConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}
	// #nosec G304 - reading the user's own config file is intentional
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		fmt.Printf("No config file at %s; defaults are in use.\n", configPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	_, result, err := config.Parse(data)
	if err != nil {
		return err
	}

	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	bad := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	for _, issue := range result.Warnings {
		lipgloss.Println(warn.Render("warning: ") + issue.String())
	}
	for _, issue := range result.Errors {
		lipgloss.Println(bad.Render("error: ") + issue.String())
	}
	if err := result.Err(); err != nil {
		return err
	}
	if !result.HasWarnings() {
		lipgloss.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("ok: ") + configPath)
	}
	return nil
}

// listKeybindings prints every section of the help overlay as a table.
func listKeybindings() error {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Padding(0, 1)

	cellStyle := lipgloss.NewStyle().
		Padding(0, 1)

	lipgloss.Println()
	lipgloss.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")).Render("devspace Keybindings"))
	lipgloss.Println()

	for _, section := range config.GetKeybindings() {
		rows := make([][]string, 0, len(section.Bindings))
		for _, b := range section.Bindings {
			rows = append(rows, []string{b.Key, b.Description})
		}
		if len(rows) == 0 {
			continue
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
			Headers("Keys", "Action").
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		lipgloss.Println(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(section.Title))
		lipgloss.Println(t.Render())
		lipgloss.Println()
	}
	return nil
}
