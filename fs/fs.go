// Package fs resolves the filesystem locations diffmark uses.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the default config file location. Uses
// XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/diffmark.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffmark", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "diffmark", "config.yaml")
}

// DefaultDraftsPath returns the default location of the draft comments file.
// Uses XDG_DATA_HOME if set, otherwise falls back to ~/.local/share/diffmark.
func DefaultDraftsPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffmark", "drafts.jsonl")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "diffmark", "drafts.jsonl")
}

// DefaultLogPath returns the default log file location. Uses XDG_STATE_HOME
// if set, otherwise falls back to ~/.local/state/diffmark.
func DefaultLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "diffmark", "diffmark.log")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "diffmark", "diffmark.log")
}
