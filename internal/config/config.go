// Package config handles application configuration loading from a YAML file
// with environment variable overrides.
package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	contextutils "kingsadvice/internal/utils"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Database configuration
	Database DatabaseConfig `json:"database" yaml:"database"`

	// Stripe configuration
	Stripe StripeConfig `json:"stripe" yaml:"stripe"`

	// Email Configuration
	Email EmailConfig `json:"email" yaml:"email"`

	// AI Configuration
	AI AIConfig `json:"ai" yaml:"ai"`

	// OpenTelemetry Configuration
	OpenTelemetry OpenTelemetryConfig `json:"open_telemetry" yaml:"open_telemetry"`

	// Internal fields
	IsTest bool `json:"is_test" yaml:"is_test"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port           string   `json:"port" yaml:"port"`
	AdminUsername  string   `json:"admin_username" yaml:"admin_username"`
	AdminPassword  string   `json:"admin_password" yaml:"admin_password"`
	SessionSecret  string   `json:"session_secret" yaml:"session_secret"`
	Debug          bool     `json:"debug" yaml:"debug"`
	LogLevel       string   `json:"log_level" yaml:"log_level"`
	AppBaseURL     string   `json:"app_base_url" yaml:"app_base_url"`
	BackendBaseURL string   `json:"backend_base_url" yaml:"backend_base_url"`
	CORSOrigins    []string `json:"cors_origins" yaml:"cors_origins"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	URL             string        `json:"url" yaml:"url"`
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// StripeConfig represents payment processor configuration
type StripeConfig struct {
	SecretKey      string `json:"secret_key" yaml:"secret_key"`
	PublishableKey string `json:"publishable_key" yaml:"publishable_key"`
	// ReturnURL is where hosted checkout redirects after payment. The
	// session id placeholder is appended automatically.
	ReturnURL string `json:"return_url" yaml:"return_url"`
}

// IsConfigured reports whether both Stripe keys are present
func (s *StripeConfig) IsConfigured() bool {
	return s.SecretKey != "" && s.PublishableKey != ""
}

// EmailConfig represents email/SMTP configuration
type EmailConfig struct {
	SMTP    SMTPConfig `json:"smtp" yaml:"smtp"`
	Enabled bool       `json:"enabled" yaml:"enabled"`
	// AdminAddress receives new-request notifications
	AdminAddress string `json:"admin_address" yaml:"admin_address"`
}

// SMTPConfig represents SMTP server configuration
type SMTPConfig struct {
	Host        string `json:"host" yaml:"host"`
	Port        int    `json:"port" yaml:"port"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	FromAddress string `json:"from_address" yaml:"from_address"`
	FromName    string `json:"from_name" yaml:"from_name"`
}

// AIConfig represents generative-text provider configuration.
// The provider must expose an OpenAI-compatible chat completions endpoint.
type AIConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	URL       string `json:"url" yaml:"url"`
	Model     string `json:"model" yaml:"model"`
	APIKey    string `json:"api_key" yaml:"api_key"`
	MaxTokens int    `json:"max_tokens" yaml:"max_tokens"`
}

// OpenTelemetryConfig holds all OpenTelemetry-related configuration
type OpenTelemetryConfig struct {
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`               // Default: "http://localhost:4317"
	Protocol       string            `json:"protocol" yaml:"protocol"`               // "grpc" or "http", default: "grpc"
	Insecure       bool              `json:"insecure" yaml:"insecure"`               // Default: true (for localhost)
	Headers        map[string]string `json:"headers" yaml:"headers"`                 // For authenticated endpoints
	ServiceName    string            `json:"service_name" yaml:"service_name"`       // Default: "advice-backend"
	ServiceVersion string            `json:"service_version" yaml:"service_version"` // From version package
	EnableTracing  bool              `json:"enable_tracing" yaml:"enable_tracing"`   // Default: true
	EnableMetrics  bool              `json:"enable_metrics" yaml:"enable_metrics"`   // Default: true
	EnableLogging  bool              `json:"enable_logging" yaml:"enable_logging"`   // Default: true
	SamplingRate   float64           `json:"sampling_rate" yaml:"sampling_rate"`     // Default: 1.0 (100%)
	UseAutoSDK     bool              `json:"use_auto_sdk" yaml:"use_auto_sdk"`       // Default: false (standard SDK)
}

// NewConfig loads configuration from YAML file first, then overrides with environment variables
func NewConfig() (result0 *Config, err error) {
	config, err := loadConfigWithOverrides()
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config: %w", err)
	}

	config.overrideFromEnv()

	return config, nil
}

// overrideFromEnv overrides config values with environment variables using reflection
func (c *Config) overrideFromEnv() {
	overrideStructFromEnv(c)
}

// overrideStructFromEnv recursively overrides struct fields with environment variables
func overrideStructFromEnv(v interface{}) {
	overrideStructFromEnvWithPrefix(v, "")
}

// overrideStructFromEnvWithPrefix recursively overrides struct fields with environment variables
func overrideStructFromEnvWithPrefix(v interface{}, prefix string) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		// Skip unexported fields
		if !field.CanSet() {
			continue
		}

		yamlTag := fieldType.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		yamlTag = strings.Split(yamlTag, ",")[0]

		// Convert yaml tag to environment variable name
		envKey := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
		if prefix != "" {
			envKey = prefix + "_" + envKey
		}

		switch field.Kind() {
		case reflect.String:
			if envVal := os.Getenv(envKey); envVal != "" {
				field.SetString(envVal)
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if field.Type() == reflect.TypeOf(time.Duration(0)) {
					if d, err := time.ParseDuration(envVal); err == nil {
						field.SetInt(int64(d))
					}
				} else if intVal, err := strconv.ParseInt(envVal, 10, 64); err == nil {
					field.SetInt(intVal)
				}
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if uintVal, err := strconv.ParseUint(envVal, 10, 64); err == nil {
					field.SetUint(uintVal)
				}
			}
		case reflect.Float32, reflect.Float64:
			if envVal := os.Getenv(envKey); envVal != "" {
				if floatVal, err := strconv.ParseFloat(envVal, 64); err == nil {
					field.SetFloat(floatVal)
				}
			}
		case reflect.Bool:
			if envVal := os.Getenv(envKey); envVal != "" {
				if boolVal, err := strconv.ParseBool(envVal); err == nil {
					field.SetBool(boolVal)
				}
			}
		case reflect.Slice:
			if envVal := os.Getenv(envKey); envVal != "" {
				// Handle string slices (like CORS_ORIGINS)
				if field.Type().Elem().Kind() == reflect.String {
					slice := strings.Split(envVal, ",")
					field.Set(reflect.ValueOf(slice))
				}
			}
		case reflect.Struct:
			// Recursively process nested structs with the field name as prefix
			if field.CanAddr() {
				fieldPrefix := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
				if prefix != "" {
					fieldPrefix = prefix + "_" + fieldPrefix
				}
				overrideStructFromEnvWithPrefix(field.Addr().Interface(), fieldPrefix)
			}
		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.Struct {
				fieldPrefix := strings.ToUpper(strings.ReplaceAll(yamlTag, "-", "_"))
				if prefix != "" {
					fieldPrefix = prefix + "_" + fieldPrefix
				}
				overrideStructFromEnvWithPrefix(field.Interface(), fieldPrefix)
			}
		}
	}
}

// loadConfigWithOverrides loads the config file with potential local overrides
func loadConfigWithOverrides() (result0 *Config, err error) {
	// Try to load from environment variable first
	if envPath := os.Getenv("ADVICE_CONFIG_FILE"); envPath != "" {
		config, err := loadConfigFromFile(envPath)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config from %s: %w", envPath, err)
		}
		return config, nil
	}

	// If no environment variable is set, try default config.yaml
	return loadConfigFromFile("config.yaml")
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (result0 *Config, err error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
