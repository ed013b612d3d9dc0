package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/viper"

	"github.com/younsl/spotbid/pkg/utils"
)

// Config holds every knob the run needs. It is built once from flags
// and environment before the workflow starts and passed by value; no
// package reads configuration from ambient state.
type Config struct {
	Region             string
	KeyPattern         string
	GroupPattern       string
	TypePattern        string
	ProductDescription string
	BidMultiplier      float64

	// Replay swaps the provider gateway for the embedded fixtures,
	// so no AWS call is made at all.
	Replay bool

	// TestBid substitutes the fixed low test price for the computed
	// bid, so an accidental confirm cannot win a reservation.
	TestBid bool

	LogDir string
}

// Load reads the bound flags/environment out of viper and validates
// the result. Patterns are compiled here so a bad regex fails the run
// before any provider call is made.
func Load() (Config, error) {
	cfg := Config{
		Region:             viper.GetString("region"),
		KeyPattern:         viper.GetString("key-pattern"),
		GroupPattern:       viper.GetString("group-pattern"),
		TypePattern:        viper.GetString("type-pattern"),
		ProductDescription: viper.GetString("product"),
		BidMultiplier:      viper.GetFloat64("bid-multiplier"),
		Replay:             viper.GetBool("replay"),
		TestBid:            viper.GetBool("test-bid"),
		LogDir:             viper.GetString("log-dir"),
	}

	if cfg.Region == "" {
		cfg.Region = utils.GetDefaultRegion()
	}
	if !utils.IsValidRegion(cfg.Region) {
		return Config{}, fmt.Errorf("invalid region %q", cfg.Region)
	}

	if cfg.BidMultiplier <= 0 {
		return Config{}, fmt.Errorf("bid multiplier must be positive, got %g", cfg.BidMultiplier)
	}

	for _, p := range []struct{ name, pattern string }{
		{"key-pattern", cfg.KeyPattern},
		{"group-pattern", cfg.GroupPattern},
		{"type-pattern", cfg.TypePattern},
	} {
		if _, err := regexp.Compile("(?i)" + p.pattern); err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", p.name, p.pattern, err)
		}
	}

	if cfg.ProductDescription == "" {
		return Config{}, fmt.Errorf("product description must not be empty")
	}

	if cfg.LogDir == "" {
		cfg.LogDir = os.TempDir()
	}

	return cfg, nil
}
