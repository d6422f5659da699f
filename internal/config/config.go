package config

import (
	"time"

	"github.com/spf13/viper"
)

type AccessType string

const (
	SQLAccess      AccessType = "SQL"
	SquirrelAccess AccessType = "SQUIRREL"
)

type Config struct {
	SiteBaseURL string `mapstructure:"SITE_BASE_URL"`
	ServerPort  int    `mapstructure:"SERVER_PORT"`
	MetricsPort int    `mapstructure:"METRICS_PORT"`

	TwitterBaseURL  string `mapstructure:"TWITTER_BASE_URL"`
	TwitterUsername string `mapstructure:"TWITTER_USERNAME"`
	TwitterPassword string `mapstructure:"TWITTER_PASSWORD"`
	TwitterTitle    string `mapstructure:"TWITTER_TITLE"`

	ShortenerBaseURL string `mapstructure:"SHORTENER_BASE_URL"`

	SmugMugBaseURL         string        `mapstructure:"SMUGMUG_BASE_URL"`
	SmugMugNickname        string        `mapstructure:"SMUGMUG_NICKNAME"`
	SmugMugItemsToDisplay  int           `mapstructure:"SMUGMUG_ITEMS_TO_DISPLAY"`
	SmugMugRefreshInterval time.Duration `mapstructure:"SMUGMUG_REFRESH_INTERVAL"`

	SitemapIncludeUncategorized bool   `mapstructure:"SITEMAP_INCLUDE_UNCATEGORIZED"`
	OpenSearchName              string `mapstructure:"OPENSEARCH_NAME"`
	OpenSearchDescription       string `mapstructure:"OPENSEARCH_DESCRIPTION"`

	DatabaseURL        string     `mapstructure:"DATABASE_URL"`
	DatabaseAccessType AccessType `mapstructure:"DATABASE_ACCESS_TYPE"`
	DatabaseMaxConn    int        `mapstructure:"DATABASE_MAX_CONNECTIONS"`

	RedisURL      string        `mapstructure:"REDIS_URL"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	RedisCacheTTL time.Duration `mapstructure:"REDIS_CACHE_TTL"`

	CommitTransport string `mapstructure:"COMMIT_TRANSPORT"`
	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaGroupID    string `mapstructure:"KAFKA_GROUP_ID"`
	TopicCommits    string `mapstructure:"TOPIC_COMMITS"`
	TopicCommitsDLQ string `mapstructure:"TOPIC_COMMITS_DLQ"`

	HTTPRequestTimeout     time.Duration `mapstructure:"HTTP_REQUEST_TIMEOUT"`
	ExternalRequestTimeout time.Duration `mapstructure:"EXTERNAL_REQUEST_TIMEOUT"`

	RateLimitRequests int           `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`

	RetryCount           int           `mapstructure:"RETRY_COUNT"`
	RetryBackoff         time.Duration `mapstructure:"RETRY_BACKOFF"`
	RetryableStatusCodes []int         `mapstructure:"RETRYABLE_STATUS_CODES"`

	CBSlidingWindowSize        int           `mapstructure:"CB_SLIDING_WINDOW_SIZE"`
	CBMinimumRequiredCalls     int           `mapstructure:"CB_MINIMUM_REQUIRED_CALLS"`
	CBFailureRateThreshold     int           `mapstructure:"CB_FAILURE_RATE_THRESHOLD"`
	CBPermittedCallsInHalfOpen int           `mapstructure:"CB_PERMITTED_CALLS_IN_HALF_OPEN"`
	CBWaitDurationInOpenState  time.Duration `mapstructure:"CB_WAIT_DURATION_IN_OPEN_STATE"`
}

func LoadConfig() *Config {
	setDefaults()

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return getDefaultConfig()
	}

	return config
}

func setDefaults() {
	viper.SetDefault("SITE_BASE_URL", "http://localhost:8080/")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("METRICS_PORT", 9094)

	viper.SetDefault("TWITTER_BASE_URL", "http://twitter.com")
	viper.SetDefault("TWITTER_TITLE", "")

	viper.SetDefault("SHORTENER_BASE_URL", "http://is.gd")

	viper.SetDefault("SMUGMUG_BASE_URL", "http://www.smugmug.com")
	viper.SetDefault("SMUGMUG_ITEMS_TO_DISPLAY", 6)
	viper.SetDefault("SMUGMUG_REFRESH_INTERVAL", "15m")

	viper.SetDefault("SITEMAP_INCLUDE_UNCATEGORIZED", false)
	viper.SetDefault("OPENSEARCH_NAME", "Search")
	viper.SetDefault("OPENSEARCH_DESCRIPTION", "Search this site")

	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DATABASE_ACCESS_TYPE", string(SQLAccess))
	viper.SetDefault("DATABASE_MAX_CONNECTIONS", 10)

	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_CACHE_TTL", "24h")

	viper.SetDefault("COMMIT_TRANSPORT", "INPROC")
	viper.SetDefault("KAFKA_BROKERS", "kafka:9092")
	viper.SetDefault("KAFKA_GROUP_ID", "graffiti-extensions")
	viper.SetDefault("TOPIC_COMMITS", "post-commits")
	viper.SetDefault("TOPIC_COMMITS_DLQ", "post-commits-dlq")

	viper.SetDefault("HTTP_REQUEST_TIMEOUT", "5s")
	viper.SetDefault("EXTERNAL_REQUEST_TIMEOUT", "10s")

	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.SetDefault("RETRY_COUNT", 3)
	viper.SetDefault("RETRY_BACKOFF", "1s")
	viper.SetDefault("RETRYABLE_STATUS_CODES", []int{408, 429, 500, 502, 503, 504})

	viper.SetDefault("CB_SLIDING_WINDOW_SIZE", 10)
	viper.SetDefault("CB_MINIMUM_REQUIRED_CALLS", 5)
	viper.SetDefault("CB_FAILURE_RATE_THRESHOLD", 50)
	viper.SetDefault("CB_PERMITTED_CALLS_IN_HALF_OPEN", 2)
	viper.SetDefault("CB_WAIT_DURATION_IN_OPEN_STATE", "10s")
}

func getDefaultConfig() *Config {
	return &Config{
		SiteBaseURL: "http://localhost:8080/",
		ServerPort:  8080,
		MetricsPort: 9094,

		TwitterBaseURL:   "http://twitter.com",
		ShortenerBaseURL: "http://is.gd",

		SmugMugBaseURL:         "http://www.smugmug.com",
		SmugMugItemsToDisplay:  6,
		SmugMugRefreshInterval: 15 * time.Minute,

		OpenSearchName:        "Search",
		OpenSearchDescription: "Search this site",

		DatabaseAccessType: SQLAccess,
		DatabaseMaxConn:    10,

		RedisCacheTTL: 24 * time.Hour,

		CommitTransport: "INPROC",
		KafkaBrokers:    "kafka:9092",
		KafkaGroupID:    "graffiti-extensions",
		TopicCommits:    "post-commits",
		TopicCommitsDLQ: "post-commits-dlq",

		HTTPRequestTimeout:     5 * time.Second,
		ExternalRequestTimeout: 10 * time.Second,

		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,

		RetryCount:           3,
		RetryBackoff:         1 * time.Second,
		RetryableStatusCodes: []int{408, 429, 500, 502, 503, 504},

		CBSlidingWindowSize:        10,
		CBMinimumRequiredCalls:     5,
		CBFailureRateThreshold:     50,
		CBPermittedCallsInHalfOpen: 2,
		CBWaitDurationInOpenState:  10 * time.Second,
	}
}
