package notify

import (
	"strings"
	"time"

	"github.com/HerbHall/energyguard/pkg/energy"
)

// NotifyConfig holds configuration for the Notify plugin.
type NotifyConfig struct {
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Enabled  bool          `mapstructure:"enabled"`
	MinLevel string        `mapstructure:"min_level"`
}

// DefaultConfig returns sensible defaults for the Notify plugin.
func DefaultConfig() NotifyConfig {
	return NotifyConfig{
		Timeout:  10 * time.Second,
		Enabled:  true,
		MinLevel: string(energy.AlertWarning),
	}
}

// parseLevel maps a config string to an alert level, case-insensitively.
func parseLevel(s string) (energy.AlertLevel, bool) {
	switch level := energy.AlertLevel(strings.ToUpper(s)); level {
	case energy.AlertNormal, energy.AlertWarning, energy.AlertCritical:
		return level, true
	default:
		return "", false
	}
}
