package module

import "flowqfit/internal/platform/config"

// Options holds configuration settings for the pipeline module
type Options struct {
	Units  int
	Buffer int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	pf := cfg.Prefix("CORE_PIPELINE_")
	return Options{
		Units:  pf.MayInt("UNITS", 4),
		Buffer: pf.MayInt("BUFFER", 256),
	}
}
