package config

const (
	defaultBind          = "127.0.0.1:8080"
	defaultMaxUploadMB   = 50
	defaultSessionTTLMin = 60
	defaultMergeInterval = 500
	defaultMergeBurst    = 2
	defaultLogLevel      = "info"
	defaultLogFormat     = "auto"
	defaultLanguage      = "ja"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind:        defaultBind,
			MaxUploadMB: defaultMaxUploadMB,
		},
		Session: Session{
			TTLMinutes: defaultSessionTTLMin,
		},
		Merge: Merge{
			MinIntervalMS: defaultMergeInterval,
			Burst:         defaultMergeBurst,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		UI: UI{
			Language: defaultLanguage,
		},
	}
}
