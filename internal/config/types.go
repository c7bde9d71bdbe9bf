package config

// Config is the main mtgate configuration carrier.
type Config struct {
	App      AppConfig      `toml:"app"`
	Terminal TerminalConfig `toml:"terminal"`
	Trade    TradeConfig    `toml:"trade"`
	Journal  JournalConfig  `toml:"journal"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

// TerminalConfig locates the HTTP bridge fronting the trading terminal.
type TerminalConfig struct {
	BridgeURL          string `toml:"bridge_url"`
	TimeoutSeconds     int    `toml:"timeout_seconds"`
	APIToken           string `toml:"api_token"`
	Username           string `toml:"username"`
	Password           string `toml:"password"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
}

// TradeConfig carries the defaults stamped onto outgoing trade requests.
type TradeConfig struct {
	ClientTag        string `toml:"client_tag"`
	DefaultDeviation int    `toml:"default_deviation"`
	Magic            int64  `toml:"magic"`
}

type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}
