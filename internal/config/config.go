package config

type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	Paths  PathsConfig  `yaml:"paths" toml:"paths"`
	Scout  ScoutConfig  `yaml:"scout" toml:"scout"`
	UI     UIConfig     `yaml:"ui" toml:"ui"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	Update UpdateConfig `yaml:"update" toml:"update"`
}

type ServerConfig struct {
	URL           string `yaml:"url" toml:"url"`
	StatusTimeout int    `yaml:"status_timeout" toml:"status_timeout"`
}

// PathsConfig pre-fills the ingest form until the backend reports its own
// paths through /api/status.
type PathsConfig struct {
	Vault  string `yaml:"vault" toml:"vault"`
	Chroma string `yaml:"chroma" toml:"chroma"`
}

type ScoutConfig struct {
	Theme       string   `yaml:"theme" toml:"theme"`
	Constraints []string `yaml:"constraints" toml:"constraints"`
}

type UIConfig struct {
	FeedLimit      int   `yaml:"feed_limit" toml:"feed_limit"`
	LogScrollSpeed int   `yaml:"log_scroll_speed" toml:"log_scroll_speed"`
	PollInterval   int   `yaml:"poll_interval" toml:"poll_interval"`
	ShowTimestamps *bool `yaml:"show_timestamps" toml:"show_timestamps"`
}

type LogConfig struct {
	File  string `yaml:"file" toml:"file"`
	Level string `yaml:"level" toml:"level"`
}

type UpdateConfig struct {
	Repo string `yaml:"repo" toml:"repo"`
}
