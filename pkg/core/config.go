package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the Bitget REST endpoint.
	DefaultBaseURL = "https://api.bitget.com"
	// DefaultWSURL is the Bitget public websocket endpoint.
	DefaultWSURL = "wss://ws.bitget.com/v2/ws/public"
	// DefaultPrivateWSURL is the Bitget private websocket endpoint.
	DefaultPrivateWSURL = "wss://ws.bitget.com/v2/ws/private"
	// DefaultSuccessCode is the envelope code Bitget uses for a non-error response.
	DefaultSuccessCode = "00000"
)

// Environment variables consulted by CredentialsFromEnv.
const (
	EnvAPIKey     = "BITGET_API_KEY"
	EnvSecretKey  = "BITGET_API_SECRET"
	EnvPassphrase = "BITGET_PASSPHRASE"
)

// SignType names a request signature scheme.
type SignType string

const (
	// SignHMACSHA256 is base64(HMAC-SHA256(secret, prehash)), the only supported scheme.
	SignHMACSHA256 SignType = "HmacSHA256"
	// SignRSA is recognized by the exchange but not implemented by this client.
	SignRSA SignType = "RSA"
)

// Credentials holds API authentication credentials.
// A client treats its Credentials as immutable.
type Credentials struct {
	// APIKey is the public API key identifier sent as ACCESS-KEY.
	APIKey string `json:"api_key" yaml:"api_key" validate:"required"`
	// SecretKey is the private key used for signing requests. It is never sent.
	SecretKey string `json:"secret_key" yaml:"secret_key" validate:"required"`
	// Passphrase is the third secret chosen when the key was created.
	Passphrase string `json:"passphrase" yaml:"passphrase" validate:"required"`
}

// Validate reports whether all three credential parts are present.
func (c *Credentials) Validate() error {
	if c == nil {
		return &ConfigError{Code: ErrCodeNoCredentials, Err: ErrNoCredentials}
	}
	if err := validate.Struct(c); err != nil {
		return &ConfigError{Code: ErrCodeNoCredentials, Err: fmt.Errorf("%w: %v", ErrNoCredentials, err)}
	}
	return nil
}

// String returns a masked representation safe for logs.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{APIKey:%s}", MaskKey(c.APIKey))
}

// MaskKey hides all but the first and last four characters of key.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}

// CredentialsFromEnv reads credentials from BITGET_API_KEY, BITGET_API_SECRET
// and BITGET_PASSPHRASE. It returns nil when no key is set.
func CredentialsFromEnv() *Credentials {
	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if key == "" {
		return nil
	}
	return &Credentials{
		APIKey:     key,
		SecretKey:  strings.TrimSpace(os.Getenv(EnvSecretKey)),
		Passphrase: strings.TrimSpace(os.Getenv(EnvPassphrase)),
	}
}

// Config contains all configuration options for a Bitget client.
type Config struct {
	BaseURL      string       `json:"base_url" yaml:"base_url" validate:"required,url"`
	WSURL        string       `json:"ws_url" yaml:"ws_url" validate:"required,url"`
	PrivateWSURL string       `json:"private_ws_url" yaml:"private_ws_url" validate:"required,url"`
	Credentials  *Credentials `json:"credentials,omitempty" yaml:"credentials,omitempty" validate:"-"`

	// SignType selects the signature scheme. Only HmacSHA256 is implemented.
	SignType SignType `json:"sign_type" yaml:"sign_type" validate:"required"`
	// SuccessCode is the envelope code treated as success.
	SuccessCode string `json:"success_code" yaml:"success_code" validate:"required"`
	// Locale is sent as the optional "locale" header when set.
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`

	// Timeout is the maximum duration for a single HTTP request.
	Timeout time.Duration `json:"timeout" yaml:"timeout" validate:"min=1ms"`
	// UseServerTime stamps requests with the offset learned by SyncTime.
	UseServerTime bool `json:"use_server_time" yaml:"use_server_time"`
	// MaxConcurrency bounds the number of requests DoAll keeps in flight.
	MaxConcurrency int `json:"max_concurrency" yaml:"max_concurrency" validate:"min=1"`

	LogLevel string `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config initialized with defaults for the production API.
// Default values: 10s timeout, HmacSHA256 signing, "00000" success code, 8 concurrent requests.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		WSURL:          DefaultWSURL,
		PrivateWSURL:   DefaultPrivateWSURL,
		SignType:       SignHMACSHA256,
		SuccessCode:    DefaultSuccessCode,
		Timeout:        10 * time.Second,
		MaxConcurrency: 8,
		LogLevel:       "info",
	}
}

var validate = validator.New()

// Validate checks the configuration. Credentials are checked only when present;
// the signature scheme is checked when the signer is built.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &ConfigError{Code: ErrCodeInvalidConfig, Err: err}
	}
	if c.Credentials != nil {
		if err := c.Credentials.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig reads a YAML file over DefaultConfig. When the file carries no
// credentials they are taken from the environment.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Code: ErrCodeInvalidConfig, Err: fmt.Errorf("parse %s: %w", path, err)}
	}
	if cfg.Credentials == nil {
		cfg.Credentials = CredentialsFromEnv()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithBaseURL sets the REST endpoint and returns the config for chaining.
func (c *Config) WithBaseURL(url string) *Config {
	c.BaseURL = url
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithSignType sets the signature scheme and returns the config for chaining.
func (c *Config) WithSignType(st SignType) *Config {
	c.SignType = st
	return c
}

// WithServerTime enables or disables server-time stamping and returns the config for chaining.
func (c *Config) WithServerTime(enabled bool) *Config {
	c.UseServerTime = enabled
	return c
}

// WithWSURL sets the public and private websocket endpoints and returns the config for chaining.
func (c *Config) WithWSURL(public, private string) *Config {
	c.WSURL = public
	c.PrivateWSURL = private
	return c
}

// Clone returns a deep copy of the config, credentials included.
func (c *Config) Clone() *Config {
	out := *c
	if c.Credentials != nil {
		creds := *c.Credentials
		out.Credentials = &creds
	}
	return &out
}
