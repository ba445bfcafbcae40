package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// RoomGrace is how long an empty room survives before deletion.
	RoomGrace time.Duration `mapstructure:"room_grace" yaml:"room_grace"`

	// Passphrase gates API and websocket access when set. It may be a plain
	// shared secret or a bcrypt hash of one. Empty disables the gate.
	Passphrase string `mapstructure:"passphrase" yaml:"passphrase"`

	// AccessSecret signs access tokens handed out for a correct passphrase.
	AccessSecret string        `mapstructure:"access_secret" yaml:"access_secret"`
	AccessTTL    time.Duration `mapstructure:"access_ttl" yaml:"access_ttl"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3000",
		LogLevel:          "info",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		RoomGrace:         5 * time.Minute,
		AccessTTL:         24 * time.Hour,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.RoomGrace != 0 {
		c.RoomGrace = other.RoomGrace
	}
	if other.Passphrase != "" {
		c.Passphrase = other.Passphrase
	}
	if other.AccessSecret != "" {
		c.AccessSecret = other.AccessSecret
	}
	if other.AccessTTL != 0 {
		c.AccessTTL = other.AccessTTL
	}
}
