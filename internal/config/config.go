package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoggingAdapter describes one configured log output.
type LoggingAdapter struct {
	Name    string                 `yaml:"name"`
	Type    string                 `yaml:"type"`
	Enabled bool                   `yaml:"enabled"`
	Options map[string]interface{} `yaml:"options"`
}

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`

	Crawler struct {
		Terms           []string      `yaml:"terms"`
		MaxPagesPerTerm int           `yaml:"max_pages_per_term"`
		TotalLimit      int           `yaml:"total_limit"`
		FetchDetails    bool          `yaml:"fetch_details"`
		MaxNoNewPages   int           `yaml:"max_no_new_pages"`
		PoliteDelay     time.Duration `yaml:"polite_delay"`
		PageWait        time.Duration `yaml:"page_wait"`
		OutputDir       string        `yaml:"output_dir"`
	} `yaml:"crawler"`

	Scraper struct {
		UserAgent      string        `yaml:"user_agent"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		HeadlessMode   bool          `yaml:"headless_mode"`
		StealthMode    bool          `yaml:"stealth_mode"`
	} `yaml:"scraper"`

	Logging struct {
		Level    string           `yaml:"level"`
		Format   string           `yaml:"format"`
		Adapters []LoggingAdapter `yaml:"adapters"`
	} `yaml:"logging"`

	Redis struct {
		URL      string        `yaml:"url"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Timeout  time.Duration `yaml:"timeout"`
		Enabled  bool          `yaml:"enabled"`
	} `yaml:"redis"`

	Tasks struct {
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"tasks"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

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

	config.Crawler.MaxPagesPerTerm = 20
	config.Crawler.TotalLimit = 1000
	config.Crawler.FetchDetails = true
	config.Crawler.MaxNoNewPages = 5
	config.Crawler.PoliteDelay = time.Second
	config.Crawler.PageWait = 15 * time.Second
	config.Crawler.OutputDir = "data/processed"

	config.Scraper.RequestTimeout = 30 * time.Second
	config.Scraper.HeadlessMode = true
	config.Scraper.StealthMode = true
	config.Scraper.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Tasks.TTL = 24 * time.Hour

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
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

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if terms := os.Getenv("CRAWLER_TERMS"); terms != "" {
		var parsed []string
		for _, t := range strings.Split(terms, ",") {
			if t = strings.TrimSpace(t); t != "" {
				parsed = append(parsed, t)
			}
		}
		if len(parsed) > 0 {
			c.Crawler.Terms = parsed
		}
	}

	if maxPages := os.Getenv("CRAWLER_MAX_PAGES_PER_TERM"); maxPages != "" {
		if n, err := strconv.Atoi(maxPages); err == nil {
			c.Crawler.MaxPagesPerTerm = n
		}
	}

	if limit := os.Getenv("CRAWLER_TOTAL_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			c.Crawler.TotalLimit = n
		}
	}

	if details := os.Getenv("CRAWLER_FETCH_DETAILS"); details != "" {
		c.Crawler.FetchDetails = details == "true" || details == "1"
	}

	if noNew := os.Getenv("CRAWLER_MAX_NO_NEW_PAGES"); noNew != "" {
		if n, err := strconv.Atoi(noNew); err == nil {
			c.Crawler.MaxNoNewPages = n
		}
	}

	if delay := os.Getenv("CRAWLER_POLITE_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil {
			c.Crawler.PoliteDelay = d
		}
	}

	if wait := os.Getenv("CRAWLER_PAGE_WAIT"); wait != "" {
		if d, err := time.ParseDuration(wait); err == nil {
			c.Crawler.PageWait = d
		}
	}

	if dir := os.Getenv("CRAWLER_OUTPUT_DIR"); dir != "" {
		c.Crawler.OutputDir = dir
	}

	if userAgent := os.Getenv("SCRAPER_USER_AGENT"); userAgent != "" {
		c.Scraper.UserAgent = userAgent
	}

	if timeout := os.Getenv("SCRAPER_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Scraper.RequestTimeout = d
		}
	}

	if headless := os.Getenv("SCRAPER_HEADLESS"); headless != "" {
		c.Scraper.HeadlessMode = headless == "true" || headless == "1"
	}

	if stealth := os.Getenv("SCRAPER_STEALTH"); stealth != "" {
		c.Scraper.StealthMode = stealth == "true" || stealth == "1"
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
		c.Redis.Enabled = true
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

	if redisEnabled := os.Getenv("REDIS_ENABLED"); redisEnabled != "" {
		c.Redis.Enabled = redisEnabled == "true" || redisEnabled == "1"
	}

	if ttl := os.Getenv("TASKS_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Tasks.TTL = d
		}
	}
}
