package config

const (
	defaultAppEnv          = "dev"
	defaultAppLogLevel     = "info"
	defaultAppHTTPAddr     = ":9982"
	defaultTerminalTimeout = 15
	defaultTradeClientTag  = "mtgate"
	defaultTradeDeviation  = 20
	defaultJournalPath     = "data/journal.db"
)

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Terminal.applyDefaults()
	c.Trade.applyDefaults()
	c.Journal.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if a.Env == "" {
		a.Env = defaultAppEnv
	}
	if a.LogLevel == "" {
		a.LogLevel = defaultAppLogLevel
	}
	if a.HTTPAddr == "" {
		a.HTTPAddr = defaultAppHTTPAddr
	}
}

func (t *TerminalConfig) applyDefaults() {
	if t.TimeoutSeconds <= 0 {
		t.TimeoutSeconds = defaultTerminalTimeout
	}
}

func (t *TradeConfig) applyDefaults() {
	if t.ClientTag == "" {
		t.ClientTag = defaultTradeClientTag
	}
	if t.DefaultDeviation <= 0 {
		t.DefaultDeviation = defaultTradeDeviation
	}
}

func (j *JournalConfig) applyDefaults() {
	if j.Path == "" {
		j.Path = defaultJournalPath
	}
}
