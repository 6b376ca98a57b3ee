package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			URL:           "http://127.0.0.1:8000",
			StatusTimeout: 5,
		},
		Paths: PathsConfig{
			Vault:  "./my_vault",
			Chroma: "./chroma_db",
		},
		UI: UIConfig{
			FeedLimit:      200,
			LogScrollSpeed: 3,
			ShowTimestamps: boolPtr(true),
		},
		Log: LogConfig{
			Level: "info",
		},
		Update: UpdateConfig{
			Repo: "justinpbarnett/labtop",
		},
	}
}
