package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// At least 8 characters with one letter and one digit.
const adminPasswordPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	adminPasswordExp = regexp2.MustCompile(adminPasswordPattern, regexp2.None)

	errWeakAdminPassword = errors.New("the admin password must be at least 8 characters and contain 1 letter and 1 number")
)

type AppConfig struct {
	API          *APIConfig          `mapstructure:"api"`
	Gin          *GinConfig          `mapstructure:"gin"`
	Postgres     *PostgresConfig     `mapstructure:"postgres"`
	Admin        *AdminConfig        `mapstructure:"admin"`
	Registration *RegistrationConfig `mapstructure:"registration"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	LogLevel           string   `mapstructure:"log_level"`
}

func (c *APIConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DB              string        `mapstructure:"db"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

// AdminConfig holds the shared admin secret and the session cookie settings.
// PasswordHash (bcrypt) takes precedence over Password.
type AdminConfig struct {
	Password          string        `mapstructure:"password"`
	PasswordHash      string        `mapstructure:"password_hash"`
	SessionSigningKey string        `mapstructure:"session_signing_key"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	CookieName        string        `mapstructure:"cookie_name"`
	LoginPath         string        `mapstructure:"login_path"`
}

func (c *AdminConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Password, validation.By(validateAdminPassword)),
		validation.Field(&c.SessionSigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.SessionTTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.CookieName, validation.Required),
	)
}

func validateAdminPassword(value interface{}) error {
	password, _ := value.(string)
	if password == "" {
		return nil
	}

	ok, err := adminPasswordExp.MatchString(password)
	if err != nil {
		return err
	}
	if !ok {
		return errWeakAdminPassword
	}

	return nil
}

type RegistrationConfig struct {
	// RequireKnownEvent rejects submissions for event names that do not
	// match an existing event.
	RequireKnownEvent bool `mapstructure:"require_known_event"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", EnvDevelopment)
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.log_level", "info")

	v.SetDefault("gin.mode", "debug")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "event_registration")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("admin.password", "")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.session_signing_key", "")
	v.SetDefault("admin.session_ttl", 24*time.Hour)
	v.SetDefault("admin.cookie_name", "admin-auth")
	v.SetDefault("admin.login_path", "/admin-login")

	v.SetDefault("registration.require_known_event", false)
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the YAML file at path (a missing file is not an error) and
// applies environment overrides such as API_PORT or ADMIN_PASSWORD.
func Load(path string) (*AppConfig, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*AppConfig, error) {
	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Admin.Validate(); err != nil {
		return nil, fmt.Errorf("invalid admin config -> %w", err)
	}

	return &conf, nil
}

// Watch calls onChange with the reloaded configuration every time the file
// at path is written. Invalid intermediate states are logged and skipped.
func Watch(path string, onChange func(*AppConfig)) error {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		conf, err := decode(v)
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}

		zap.L().Info("config reloaded", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		onChange(conf)
	})
	v.WatchConfig()

	return nil
}
