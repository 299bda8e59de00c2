package tariff

// TariffConfig holds configuration for the Tariff pricing plugin.
type TariffConfig struct {
	RatePerKWh string `mapstructure:"rate_per_kwh"`
	Currency   string `mapstructure:"currency"`
}

// DefaultConfig returns sensible defaults for the Tariff module.
func DefaultConfig() TariffConfig {
	return TariffConfig{
		RatePerKWh: "0.32",
		Currency:   "EUR",
	}
}
