package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config is read from the environment, optionally seeded from a .env file.
type Config struct {
	AppEnv string `mapstructure:"APP_ENV"`

	Port         string        `mapstructure:"PORT"`
	ReadTimeout  time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `mapstructure:"HTTP_IDLE_TIMEOUT"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`
	DBRetries   int    `mapstructure:"DB_MAX_RETRIES"`

	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	KafkaBroker string `mapstructure:"KAFKA_BROKER"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	AdminUsername           string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword           string `mapstructure:"ADMIN_PASSWORD"`
	AdminName               string `mapstructure:"ADMIN_NAME"`
	DefaultEmployeePassword string `mapstructure:"EMPLOYEE_DEFAULT_PASSWORD"`

	UploadDir string `mapstructure:"UPLOAD_DIR"`

	PayrollWorkingDays       int    `mapstructure:"PAYROLL_WORKING_DAYS"`
	PayrollCron              string `mapstructure:"PAYROLL_CRON"`
	StrictPayrollTransitions bool   `mapstructure:"PAYROLL_STRICT_TRANSITIONS"`
	StrictLeaveTransitions   bool   `mapstructure:"LEAVE_STRICT_TRANSITIONS"`

	LoginRatePerSecond float64 `mapstructure:"LOGIN_RATE_PER_SECOND"`
	LoginRateBurst     int     `mapstructure:"LOGIN_RATE_BURST"`
	APIRatePerSecond   float64 `mapstructure:"API_RATE_PER_SECOND"`
	APIRateBurst       int     `mapstructure:"API_RATE_BURST"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("PORT", "3000")
	v.SetDefault("HTTP_READ_TIMEOUT", 5*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("HTTP_IDLE_TIMEOUT", 60*time.Second)

	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("SQLITE_PATH", "hrms.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "hrms")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 5)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("KAFKA_BROKER", "")

	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_TTL", 12*time.Hour)

	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("ADMIN_NAME", "System Administrator")
	v.SetDefault("EMPLOYEE_DEFAULT_PASSWORD", "password123")

	v.SetDefault("UPLOAD_DIR", "uploads")

	v.SetDefault("PAYROLL_WORKING_DAYS", 22)
	v.SetDefault("PAYROLL_CRON", "")
	v.SetDefault("PAYROLL_STRICT_TRANSITIONS", false)
	v.SetDefault("LEAVE_STRICT_TRANSITIONS", false)

	v.SetDefault("LOGIN_RATE_PER_SECOND", 1.0)
	v.SetDefault("LOGIN_RATE_BURST", 5)
	v.SetDefault("API_RATE_PER_SECOND", 20.0)
	v.SetDefault("API_RATE_BURST", 40)
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite, StorePostgres:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.PayrollWorkingDays <= 0 {
		return fmt.Errorf("PAYROLL_WORKING_DAYS must be positive")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
