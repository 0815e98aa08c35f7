package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Backend is the remote EcoMart REST API this storefront fronts.
	Backend *BackendConfig `json:"backend" yaml:"backend"`

	// Redis configuration for the session store. When nil or disabled,
	// an in-memory store is used instead.
	Redis *RedisConfig `json:"redis" yaml:"redis"`

	// Session configuration for storefront browser sessions.
	Session *SessionConfig `json:"session" yaml:"session"`

	// Stripe configuration for card payment confirmation.
	Stripe *StripeConfig `json:"stripe" yaml:"stripe"`

	// Payments configuration for the payment flows.
	Payments *PaymentsConfig `json:"payments" yaml:"payments"`

	// Pricing configuration shared by the cart view and checkout.
	Pricing *PricingConfig `json:"pricing" yaml:"pricing"`
}

// BackendConfig defines how to reach the remote EcoMart API.
type BackendConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// RedisConfig defines the Redis connection for session persistence.
type RedisConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Address  string `json:"address" yaml:"address"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// SessionConfig defines storefront session behavior.
type SessionConfig struct {
	CookieName string `json:"cookieName" yaml:"cookieName"`
	// TTL is the fallback session lifetime used when the backend token
	// carries no usable expiry claim.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// StripeConfig holds the Stripe API credentials.
type StripeConfig struct {
	SecretKey string `json:"secretKey" yaml:"secretKey"`
}

// PaymentsConfig defines payment flow tunables.
type PaymentsConfig struct {
	// MpesaPollAttempts bounds the M-Pesa status poll loop.
	MpesaPollAttempts int `json:"mpesaPollAttempts" yaml:"mpesaPollAttempts"`
	// MpesaPollInterval is the fixed spacing between poll attempts.
	MpesaPollInterval time.Duration `json:"mpesaPollInterval" yaml:"mpesaPollInterval"`
	// KESPerUSD is the fixed approximate conversion rate shown to the
	// user for M-Pesa amounts. Not a live exchange rate.
	KESPerUSD float64 `json:"kesPerUsd" yaml:"kesPerUsd"`
}

// PricingConfig defines the storefront pricing constants.
type PricingConfig struct {
	ShippingFee float64 `json:"shippingFee" yaml:"shippingFee"`
	TaxRate     float64 `json:"taxRate" yaml:"taxRate"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: BACKEND_BASEURL -> backend.baseUrl (not backend.baseurl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "ecomart_session"
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 24 * time.Hour
	}

	if cfg.Payments == nil {
		cfg.Payments = &PaymentsConfig{}
	}
	if cfg.Payments.MpesaPollAttempts <= 0 {
		cfg.Payments.MpesaPollAttempts = 30
	}
	if cfg.Payments.MpesaPollInterval <= 0 {
		cfg.Payments.MpesaPollInterval = 2 * time.Second
	}
	if cfg.Payments.KESPerUSD <= 0 {
		cfg.Payments.KESPerUSD = 115
	}

	if cfg.Pricing == nil {
		cfg.Pricing = &PricingConfig{}
	}
	if cfg.Pricing.ShippingFee <= 0 {
		cfg.Pricing.ShippingFee = 5.00
	}
	if cfg.Pricing.TaxRate <= 0 {
		cfg.Pricing.TaxRate = 0.10
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
