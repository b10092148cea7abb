package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ImageStrategyInline = "inline"
	ImageStrategyRemote = "remote"

	ImageFailureSkip  = "skip"
	ImageFailureAbort = "abort"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string
	LogFile     string

	CatalogDBPath      string
	CatalogQuotaBytes  int64
	CatalogSeedOnEmpty bool

	Remote RemoteConfig
	Image  ImageConfig

	AdminID       string
	AdminSecret   string
	SessionSecret string

	Site Site
}

// RemoteConfig gates the remote catalog bridge. ProjectID and Credentials play
// the role of the hosted backend's base URL and access key.
type RemoteConfig struct {
	ProjectID     string
	Credentials   string
	EmulatorHost  string
	Table         string
	Bucket        string
	PublicBaseURL string
}

// Enabled reports whether both halves of the remote gate are present.
func (r RemoteConfig) Enabled() bool {
	if r.ProjectID == "" {
		return false
	}
	return r.Credentials != "" || r.EmulatorHost != ""
}

type ImageConfig struct {
	Strategy      string
	MaxBytes      int64
	StrictSize    bool
	FailurePolicy string
}

type Address struct {
	Line1   string `yaml:"line1" json:"line1"`
	City    string `yaml:"city" json:"city"`
	Country string `yaml:"country" json:"country"`
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s", a.Line1, a.City, a.Country)
}

type Social struct {
	Instagram string `yaml:"instagram" json:"instagram"`
	TikTok    string `yaml:"tiktok" json:"tiktok"`
}

// Site is the shop profile used by the storefront and the checkout message.
type Site struct {
	Name           string  `yaml:"name" json:"name"`
	Tagline        string  `yaml:"tagline" json:"tagline"`
	PhoneE164      string  `yaml:"phone_e164" json:"phoneE164"`
	MessagePrefix  string  `yaml:"message_prefix" json:"messagePrefix"`
	Address        Address `yaml:"address" json:"address"`
	Locale         string  `yaml:"locale" json:"locale"`
	Currency       string  `yaml:"currency" json:"currency"`
	CurrencySymbol string  `yaml:"currency_symbol" json:"currencySymbol"`
	Social         Social  `yaml:"social" json:"social"`
}

func DefaultSite() Site {
	return Site{
		Name:           "Oumy's Beauty",
		Tagline:        "Cosmétiques & soins – Paiement à la livraison",
		PhoneE164:      "+212660333732",
		MessagePrefix:  "Bonjour Oumy's Beauty, je souhaite commander:",
		Address:        Address{Line1: "oued Fes", City: "FES", Country: "Maroc"},
		Locale:         "fr",
		Currency:       "MAD",
		CurrencySymbol: "MAD",
		Social:         Social{Instagram: "@oumys.beauty", TikTok: "@oumys.beauty"},
	}
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),

		CatalogDBPath:      getEnv("CATALOG_DB_PATH", "./data/catalog.db"),
		CatalogQuotaBytes:  getEnvAsInt64("CATALOG_QUOTA_BYTES", 5*1024*1024),
		CatalogSeedOnEmpty: getEnvAsBool("CATALOG_SEED_ON_EMPTY", true),

		Remote: RemoteConfig{
			ProjectID:     getEnv("REMOTE_PROJECT_ID", ""),
			Credentials:   getEnv("REMOTE_CREDENTIALS", ""),
			EmulatorHost:  getEnv("FIRESTORE_EMULATOR_HOST", ""),
			Table:         getEnv("REMOTE_TABLE", "products"),
			Bucket:        getEnv("REMOTE_BUCKET", "product-photos"),
			PublicBaseURL: strings.TrimRight(getEnv("REMOTE_PUBLIC_BASE_URL", "https://storage.googleapis.com"), "/"),
		},
		Image: ImageConfig{
			Strategy:      getEnv("IMAGE_STRATEGY", ImageStrategyInline),
			MaxBytes:      getEnvAsInt64("IMAGE_MAX_BYTES", 5*1024*1024),
			StrictSize:    getEnvAsBool("IMAGE_STRICT_SIZE", false),
			FailurePolicy: getEnv("IMAGE_FAILURE_POLICY", ImageFailureSkip),
		},

		AdminID:       getEnv("ADMIN_ID", "admin"),
		AdminSecret:   getEnv("ADMIN_SECRET", "oumy2024"),
		SessionSecret: getEnv("SESSION_SECRET", "oumy-dev-session-secret"),

		Site: DefaultSite(),
	}

	if path := getEnv("SITE_PROFILE_PATH", ""); path != "" {
		site, err := LoadSite(path, config.Site)
		if err != nil {
			return nil, err
		}
		config.Site = site
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadSite overlays the YAML profile at path on top of base.
func LoadSite(path string, base Site) (Site, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read site profile %s: %w", path, err)
	}
	site := base
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return base, fmt.Errorf("parse site profile %s: %w", path, err)
	}
	return site, nil
}

func (c *Config) validate() error {
	switch c.Image.Strategy {
	case ImageStrategyInline, ImageStrategyRemote:
	default:
		return fmt.Errorf("IMAGE_STRATEGY must be %q or %q, got %q", ImageStrategyInline, ImageStrategyRemote, c.Image.Strategy)
	}
	switch c.Image.FailurePolicy {
	case ImageFailureSkip, ImageFailureAbort:
	default:
		return fmt.Errorf("IMAGE_FAILURE_POLICY must be %q or %q, got %q", ImageFailureSkip, ImageFailureAbort, c.Image.FailurePolicy)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}
