package module

import "flowqfit/internal/platform/config"

// Options holds configuration settings for the results module
type Options struct {
	HardLimit    int
	EnsureSchema bool
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("CORE_RESULTS_")
	return Options{
		HardLimit:    rf.MayInt("HARD_LIMIT", 100),
		EnsureSchema: rf.MayBool("ENSURE_SCHEMA", true),
	}
}
