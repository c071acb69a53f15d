// Package recorder records played games into the database and keeps the
// small amount of state that survives between runs.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppState represents the persistent application state.
type AppState struct {
	DBPath         string `json:"db_path,omitempty"`
	ActiveGameID   string `json:"active_game_id,omitempty"`
	LastSize       int    `json:"last_size,omitempty"`
	LastPlayer     string `json:"last_player,omitempty"`
	LastDeviceID   string `json:"last_device_id,omitempty"`
	LastDeviceName string `json:"last_device_name,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cubetwist")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile creates a new state file manager.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	// Try to load existing state
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return sf, nil
}

// NewDefaultStateFile creates a state file manager with the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &sf.state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	return nil
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetDBPath sets the database path.
func (sf *StateFile) SetDBPath(path string) error {
	sf.state.DBPath = path
	return sf.Save()
}

// SetActiveGame sets the game being recorded.
func (sf *StateFile) SetActiveGame(gameID string) error {
	sf.state.ActiveGameID = gameID
	return sf.Save()
}

// ClearActiveGame clears the active game ID.
func (sf *StateFile) ClearActiveGame() error {
	sf.state.ActiveGameID = ""
	return sf.Save()
}

// SetLastGame remembers the size and player name of the last game.
func (sf *StateFile) SetLastGame(size int, player string) error {
	sf.state.LastSize = size
	if player != "" {
		sf.state.LastPlayer = player
	}
	return sf.Save()
}

// SetLastDevice sets the last connected smart cube.
func (sf *StateFile) SetLastDevice(deviceID, deviceName string) error {
	sf.state.LastDeviceID = deviceID
	sf.state.LastDeviceName = deviceName
	return sf.Save()
}

// ActiveGameID returns the game left unfinished by the last run.
func (sf *StateFile) ActiveGameID() string {
	return sf.state.ActiveGameID
}

// LastSize returns the puzzle size of the last game, or 0.
func (sf *StateFile) LastSize() int {
	return sf.state.LastSize
}

// LastPlayer returns the last name entered into the ranking.
func (sf *StateFile) LastPlayer() string {
	return sf.state.LastPlayer
}

// LastDeviceID returns the last connected device ID.
func (sf *StateFile) LastDeviceID() string {
	return sf.state.LastDeviceID
}

// DBPath returns the database path.
func (sf *StateFile) DBPath() string {
	return sf.state.DBPath
}
