package ws

import "time"

// WSConfig holds configuration for the WebSocket streaming plugin.
type WSConfig struct {
	PingInterval time.Duration `mapstructure:"ping_interval"`
	SendBuffer   int           `mapstructure:"send_buffer"`
}

// DefaultConfig returns sensible defaults for the WS module.
func DefaultConfig() WSConfig {
	return WSConfig{
		PingInterval: 30 * time.Second,
		SendBuffer:   256,
	}
}
