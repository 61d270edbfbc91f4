package cfg

type Cfg struct {
	// Storage
	DBPath string

	// Application configuration
	Port         string
	SettingsFile string
	DebugAll     bool

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
