package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns the sections shown in the help overlay.
func GetKeybindings() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "DESK",
			Bindings: []Keybinding{
				{"Alt+1-5", "Open/close Notes, Todo, HTTP, Passwords, Data"},
				{"Ctrl+N", "Focus next card"},
				{"Ctrl+P", "Focus previous card"},
				{"Ctrl+W", "Close focused card"},
				{"F1", "Toggle help"},
				{"Ctrl+C", "Quit"},
			},
		},
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Drag title bar", "Move card"},
				{"Drag edge/corner", "Resize card"},
				{"Click dock item", "Open/close widget"},
				{"Esc during drag", "Cancel gesture"},
			},
		},
		{
			Title: "INSIDE A CARD",
			Bindings: []Keybinding{
				{"Tab/Shift+Tab", "Next/previous field"},
				{"Enter", "Submit field"},
				{"Up/Down", "Select item"},
				{"Ctrl+E", "Edit selected item"},
				{"Ctrl+D", "Delete selected item"},
				{"Esc", "Cancel edit"},
				{"Space", "Toggle todo / reveal password"},
			},
		},
		{
			Title: "HTTP CLIENT",
			Bindings: []Keybinding{
				{"Ctrl+R", "Send request"},
				{"Ctrl+S", "Save request"},
				{"Ctrl+O", "Saved requests"},
				{"Left/Right", "Change method, section or body type"},
			},
		},
		{
			Title: "PASSWORDS AND DATA",
			Bindings: []Keybinding{
				{"Ctrl+Y", "Copy password / export"},
				{"Ctrl+R", "Show export"},
				{"Ctrl+S", "Apply import"},
				{"Ctrl+X", "Clear all data (press twice)"},
			},
		},
	}
}
