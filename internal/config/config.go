package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Portal struct {
		BaseURL       string   `yaml:"base_url" default:"https://www.iimjobs.com"`
		LoginPath     string   `yaml:"login_path" default:"/login"`
		FeedPath      string   `yaml:"feed_path" default:"/jobfeed"`
		JobsPath      string   `yaml:"jobs_path" default:"/jobs"`
		SearchPath    string   `yaml:"search_path" default:"/j"`
		CategoryPaths []string `yaml:"category_paths"`

		SettleDelay      time.Duration `yaml:"settle_delay" default:"3s"`
		LoginSettleDelay time.Duration `yaml:"login_settle_delay" default:"5s"`
		ElementTimeout   time.Duration `yaml:"element_timeout" default:"15s"`
		NavTimeout       time.Duration `yaml:"nav_timeout" default:"30s"`
	} `yaml:"portal"`

	Scraper struct {
		UserAgent    string `yaml:"user_agent"`
		HeadlessMode bool   `yaml:"headless_mode" default:"true"`
		StealthMode  bool   `yaml:"stealth_mode" default:"true"`
	} `yaml:"scraper"`

	Sessions struct {
		MaxSessions    int `yaml:"max_sessions" default:"10"`
		LoginRateLimit int `yaml:"login_rate_limit" default:"6"` // attempts per minute per identity
	} `yaml:"sessions"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`

	Redis struct {
		URL          string        `yaml:"url" default:"redis://localhost:6379"`
		Password     string        `yaml:"password"`
		DB           int           `yaml:"db" default:"0"`
		Timeout      time.Duration `yaml:"timeout" default:"5s"`
		FeedCacheTTL time.Duration `yaml:"feed_cache_ttl" default:"10m"`
	} `yaml:"redis"`

	Diagnostics struct {
		ScreenshotDir     string `yaml:"screenshot_dir" default:"./debug"`
		EnableScreenshots bool   `yaml:"enable_screenshots" default:"true"`
	} `yaml:"diagnostics"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	// Expand ${VAR} syntax
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	// Expand $VAR syntax (but avoid replacing ${VAR} that was already processed)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Portal.BaseURL = "https://www.iimjobs.com"
	config.Portal.LoginPath = "/login"
	config.Portal.FeedPath = "/jobfeed"
	config.Portal.JobsPath = "/jobs"
	config.Portal.SearchPath = "/j"
	config.Portal.CategoryPaths = []string{
		"/j?kw=finance",
		"/j?kw=marketing",
		"/j?kw=sales",
		"/j?kw=manager",
		"/j?kw=analyst",
	}
	config.Portal.SettleDelay = 3 * time.Second
	config.Portal.LoginSettleDelay = 5 * time.Second
	config.Portal.ElementTimeout = 15 * time.Second
	config.Portal.NavTimeout = 30 * time.Second

	config.Scraper.HeadlessMode = true
	config.Scraper.StealthMode = true
	config.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	config.Sessions.MaxSessions = 10
	config.Sessions.LoginRateLimit = 6

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second
	config.Redis.FeedCacheTTL = 10 * time.Minute

	config.Diagnostics.ScreenshotDir = "./debug"
	config.Diagnostics.EnableScreenshots = true

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if baseURL := os.Getenv("PORTAL_BASE_URL"); baseURL != "" {
		c.Portal.BaseURL = baseURL
	}

	if settle := os.Getenv("PORTAL_SETTLE_DELAY"); settle != "" {
		if d, err := time.ParseDuration(settle); err == nil {
			c.Portal.SettleDelay = d
		}
	}

	if userAgent := os.Getenv("SCRAPER_USER_AGENT"); userAgent != "" {
		c.Scraper.UserAgent = userAgent
	}

	if headless := os.Getenv("SCRAPER_HEADLESS"); headless != "" {
		c.Scraper.HeadlessMode = headless == "true" || headless == "1"
	}

	if maxSessions := os.Getenv("MAX_SESSIONS"); maxSessions != "" {
		if n, err := strconv.Atoi(maxSessions); err == nil {
			c.Sessions.MaxSessions = n
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if dir := os.Getenv("SCREENSHOT_DIR"); dir != "" {
		c.Diagnostics.ScreenshotDir = dir
	}

	if enabled := os.Getenv("ENABLE_SCREENSHOTS"); enabled != "" {
		c.Diagnostics.EnableScreenshots = enabled == "true" || enabled == "1"
	}
}

// FeedLadder returns the ordered list of feed endpoints tried by the
// extraction fallback ladder, most specific first.
func (c *Config) FeedLadder() []string {
	return []string{c.Portal.FeedPath, c.Portal.JobsPath, c.Portal.SearchPath}
}

// ResolveURL resolves a site-root-relative path against the portal base
// origin. Absolute URLs pass through unchanged.
func (c *Config) ResolveURL(path string) string {
	if path == "" {
		return c.Portal.BaseURL
	}
	if len(path) >= 4 && path[:4] == "http" {
		return path
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return c.Portal.BaseURL + path
}
