package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagScene    = flag.String("scene", "", "Path to a YAML scene description")
	flagWidth    = flag.Int("width", 0, "Viewport width")
	flagHeight   = flag.Int("height", 0, "Viewport height")
	flagLighting = flag.String("lighting", "", "Lighting mode: per_light or array")
	flagCapture  = flag.Bool("capture", false, "Render one frame offscreen, save a screenshot and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
	if *flagWidth > 0 {
		cfg.Viewport.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewport.Height = *flagHeight
	}
	if *flagLighting != "" {
		cfg.Lighting.Mode = *flagLighting
	}
	if *flagCapture {
		cfg.Debug.Capture = true
	}
}
