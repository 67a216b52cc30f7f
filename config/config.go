package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TriggerConfig defines a saved MIDI trigger device
type TriggerConfig struct {
	PortName    string `json:"portName"`
	AutoConnect bool   `json:"autoConnect"`
	BaseNote    int    `json:"baseNote,omitempty"` // note mapped to pad 0
	Channel     int    `json:"channel,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	LastPanel int    `json:"lastPanel,omitempty"`
	Palette   string `json:"palette,omitempty"` // path to a .gpl palette file
}

// Config is the main configuration structure
type Config struct {
	DataDir  string          `json:"dataDir,omitempty"` // clip database location
	Triggers []TriggerConfig `json:"triggers,omitempty"`
	UI       UIConfig        `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Triggers: []TriggerConfig{
			{
				PortName:    "Launchpad X LPX MIDI",
				AutoConnect: true,
				BaseNote:    36,
			},
		},
		UI: UIConfig{
			LastPanel: 1,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "soundpad"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DataDir returns the configured clip database directory, defaulting to the
// config directory itself.
func (c *Config) DataDirPath() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return ConfigDir()
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// FindTrigger finds a trigger config by port name
func (c *Config) FindTrigger(portName string) *TriggerConfig {
	for i := range c.Triggers {
		if c.Triggers[i].PortName == portName {
			return &c.Triggers[i]
		}
	}
	return nil
}

// AddTrigger adds or updates a trigger config
func (c *Config) AddTrigger(t TriggerConfig) {
	for i := range c.Triggers {
		if c.Triggers[i].PortName == t.PortName {
			c.Triggers[i] = t
			return
		}
	}
	c.Triggers = append(c.Triggers, t)
}

// AutoConnectTriggers returns trigger configs with autoConnect enabled
func (c *Config) AutoConnectTriggers() []TriggerConfig {
	var result []TriggerConfig
	for _, t := range c.Triggers {
		if t.AutoConnect {
			result = append(result, t)
		}
	}
	return result
}
