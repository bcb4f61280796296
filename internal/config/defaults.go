package config

const (
	defaultAddr              = ":3000"
	defaultReadTimeout       = 15
	defaultWriteTimeout      = 90
	defaultSiteName          = "SEO Website"
	defaultLLMBaseURL        = "https://generativelanguage.googleapis.com/v1beta/openai"
	defaultLLMModel          = "gemini-2.0-flash"
	defaultLLMTemperature    = 0.7
	defaultLLMRequestsPerMin = 30
	defaultLLMTimeout        = 60
	defaultScraperEndpoint   = "https://api.scraperapi.com"
	defaultScraperTimeout    = 30
	defaultSearchEndpoint    = "https://serpapi.com/search.json"
	defaultSearchCountry     = "us"
	defaultSearchLanguage    = "en"
	defaultSearchNum         = 10
	defaultSearchTimeout     = 15
	defaultLogLevel          = "info"
	defaultLogFormat         = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Addr:                defaultAddr,
			ReadTimeoutSeconds:  defaultReadTimeout,
			WriteTimeoutSeconds: defaultWriteTimeout,
			SiteName:            defaultSiteName,
		},
		LLM: LLM{
			BaseURL:           defaultLLMBaseURL,
			Model:             defaultLLMModel,
			Temperature:       defaultLLMTemperature,
			RequestsPerMinute: defaultLLMRequestsPerMin,
			TimeoutSeconds:    defaultLLMTimeout,
		},
		Scraper: Scraper{
			Endpoint:       defaultScraperEndpoint,
			Render:         true,
			TimeoutSeconds: defaultScraperTimeout,
		},
		Search: Search{
			Endpoint:       defaultSearchEndpoint,
			Country:        defaultSearchCountry,
			Language:       defaultSearchLanguage,
			Num:            defaultSearchNum,
			TimeoutSeconds: defaultSearchTimeout,
		},
		Worker: Worker{
			Enabled: true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
