package config

const (
	envBdlBaseURL   = "BALLDONTLIE_BASE_URL"
	envBdlAPIKey    = "BALLDONTLIE_API_KEY"
	envBdlMaxPages  = "BALLDONTLIE_MAX_PAGES"
	envBdlPerMinute = "BALLDONTLIE_REQUESTS_PER_MINUTE"
	envBdlSeason    = "BALLDONTLIE_SEASON"

	defaultBdlBaseURL   = "https://api.balldontlie.io/v1"
	defaultBdlMaxPages  = 5
	defaultBdlPerMinute = 5
)

// BalldontlieConfig controls how we talk to the balldontlie API.
type BalldontlieConfig struct {
	BaseURL           string `yaml:"baseURL"`
	APIKey            string `yaml:"apiKey"`
	MaxPages          int    `yaml:"maxPages"`
	RequestsPerMinute int    `yaml:"requestsPerMinute"`
	// Season is the starting year of the season used for averages; 0 means current.
	Season int `yaml:"season"`
}

func defaultBalldontlie() BalldontlieConfig {
	return BalldontlieConfig{
		BaseURL:           defaultBdlBaseURL,
		MaxPages:          defaultBdlMaxPages,
		RequestsPerMinute: defaultBdlPerMinute,
	}
}

func applyBalldontlieEnv(cfg *BalldontlieConfig) {
	cfg.BaseURL = envOrDefault(envBdlBaseURL, cfg.BaseURL)
	cfg.APIKey = envOrDefault(envBdlAPIKey, cfg.APIKey)
	cfg.MaxPages = intEnvOrDefault(envBdlMaxPages, cfg.MaxPages)
	cfg.RequestsPerMinute = intEnvOrDefault(envBdlPerMinute, cfg.RequestsPerMinute)
	cfg.Season = intEnvOrDefault(envBdlSeason, cfg.Season)
}
