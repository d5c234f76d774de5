package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	HTTPPort  int
	GRPCPort  int
	Moneris   MonerisConfig
	DB        DBConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
	JWT       JWTConfig
	TLS       TLSConfig
	LogLevel  string
	LogFormat string
	// EnableReflection registers the gRPC reflection service.
	EnableReflection bool
	// RateLimitRPS caps gRPC calls per second; zero disables the limit.
	RateLimitRPS int
}

// MonerisConfig holds the gateway credentials. All three are required and
// never defaulted.
type MonerisConfig struct {
	Host     string `validate:"required,hostname_port|hostname"`
	StoreID  string `validate:"required"`
	APIToken string `validate:"required"`
	// CAFile overrides the system roots, for sandboxes behind a private CA.
	CAFile  string
	Timeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type KafkaConfig struct {
	Brokers       []string
	TLS           bool
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	AutoCreate    bool
}

type TelemetryConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// JWTConfig selects how caller tokens are verified: a public key (inline or
// from a file) when set, the shared secret otherwise.
type JWTConfig struct {
	PublicKey     string
	PublicKeyFile string
	Secret        string
	Issuer        string
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether both TLS files are configured.
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required configuration values and names the environment
// variables that are missing or malformed.
func (c Config) Validate() error {
	var problems []string

	if err := validate.Struct(c.Moneris); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: validate moneris settings: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s (%s)", envName(fe.StructField()), fe.Tag()))
		}
	}
	if c.DB.Password == "" {
		problems = append(problems, "DB_PASSWORD (required)")
	}
	if c.JWT.PublicKey == "" && c.JWT.PublicKeyFile == "" && c.JWT.Secret == "" {
		problems = append(problems, "JWT_PUBLIC_KEY, JWT_PUBLIC_KEY_FILE or JWT_SECRET (required)")
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		problems = append(problems, "GRPC_TLS_CERT and GRPC_TLS_KEY must be set together")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: invalid environment: %s", strings.Join(problems, ", "))
	}
	return nil
}

func envName(field string) string {
	switch field {
	case "Host":
		return "MONERIS_HOST"
	case "StoreID":
		return "MONERIS_STORE_ID"
	case "APIToken":
		return "MONERIS_API_TOKEN"
	default:
		return field
	}
}

// LoadDotEnv loads the first of files that exists into the process
// environment. Variables already set are left untouched. Missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
		return nil
	}
	return nil
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		HTTPPort: getEnvInt("HTTP_PORT", 8090),
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		Moneris: MonerisConfig{
			Host:     os.Getenv("MONERIS_HOST"),
			StoreID:  os.Getenv("MONERIS_STORE_ID"),
			APIToken: os.Getenv("MONERIS_API_TOKEN"),
			CAFile:   os.Getenv("MONERIS_CA_FILE"),
			Timeout:  getEnvDuration("MONERIS_TIMEOUT", 30*time.Second),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "killbill"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "killbill_moneris"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 2)),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  os.Getenv("KAFKA_SASL_USERNAME"),
			SASLPassword:  os.Getenv("KAFKA_SASL_PASSWORD"),
			AutoCreate:    getEnvBool("KAFKA_AUTO_CREATE_TOPICS", false),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  getEnv("SERVICE_NAME", "killbill-moneris-plugin"),
		},
		JWT: JWTConfig{
			PublicKey:     os.Getenv("JWT_PUBLIC_KEY"),
			PublicKeyFile: os.Getenv("JWT_PUBLIC_KEY_FILE"),
			Secret:        os.Getenv("JWT_SECRET"),
			Issuer:        getEnv("JWT_ISSUER", "killbill"),
		},
		TLS: TLSConfig{
			CertFile: os.Getenv("GRPC_TLS_CERT"),
			KeyFile:  os.Getenv("GRPC_TLS_KEY"),
		},
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		EnableReflection: getEnvBool("GRPC_REFLECTION", false),
		RateLimitRPS:     getEnvInt("GRPC_RATE_LIMIT_RPS", 0),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
