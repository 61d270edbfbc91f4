package config

// Settings holds the API settings read from the YAML settings file
type Settings struct {
	API          APIInfo         `yaml:"api"`
	Signatures   []string        `yaml:"signatures" validate:"required,min=1,dive,required"`
	DebugHosts   []string        `yaml:"debug_hosts" validate:"dive,required"`
	Dialect      string          `yaml:"dialect" validate:"omitempty,oneof=sqlite mysql fallback"`
	ListCap      int             `yaml:"list_cap" validate:"gte=0"`
	MaxLimit     int             `yaml:"max_limit" validate:"gte=0"`
	QueryTimeout int             `yaml:"query_timeout" validate:"gte=0"` // seconds
	Breaker      BreakerSettings `yaml:"breaker"`
}

// APIInfo is reported by the program info query
type APIInfo struct {
	Name    string `yaml:"name" validate:"required"`
	Version string `yaml:"version" validate:"required"`
}

// BreakerSettings controls the circuit breaker in front of the catalog store
type BreakerSettings struct {
	Failures uint32 `yaml:"failures"`
	Cooldown int    `yaml:"cooldown" validate:"gte=0"` // seconds
}
