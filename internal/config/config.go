package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aixcyberchallenge/captcha-solver/internal/logger"
	"github.com/aixcyberchallenge/captcha-solver/internal/validator"
	"github.com/aixcyberchallenge/captcha-solver/solver"
)

type SlogConfig struct {
	Level int `mapstructure:"level"`
}

type LoggingConfig struct {
	App     SlogConfig `mapstructure:"app"`
	UseOTLP bool       `mapstructure:"use_otlp"`
}

type HTTPConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"   validate:"required"`
	RetryMax int           `mapstructure:"retry_max" validate:"gte=0,lte=10"`
}

// S3 compatible store that s3://bucket/key task media is read from
type StorageConfig struct {
	Endpoint        string `mapstructure:"endpoint"          validate:"omitempty,hostname_port"`
	AccessKeyID     string `mapstructure:"access_key_id"     validate:"required_with=Endpoint"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required_with=Endpoint"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// See captcha.example.yaml for an example config
type Config struct {
	Logging       *LoggingConfig `mapstructure:"logging"        validate:"required"`
	HTTP          *HTTPConfig    `mapstructure:"http"           validate:"required"`
	Storage       StorageConfig  `mapstructure:"storage"`
	APIKey        string         `mapstructure:"api_key"        validate:"required"`
	BaseURL       string         `mapstructure:"base_url"       validate:"required,url"`
	LanguagePool  string         `mapstructure:"language_pool"  validate:"required,oneof=en ru"`
	CallbackURL   string         `mapstructure:"callback_url"   validate:"omitempty,url"`
	ListenAddress string         `mapstructure:"listen_address" validate:"required"`
	PollInterval  time.Duration  `mapstructure:"poll_interval"  validate:"required"`
	InitialWait   time.Duration  `mapstructure:"initial_wait"   validate:"gte=0"`
	SoftID        int            `mapstructure:"soft_id"`
}

const (
	APIKey        string = "api_key"
	AppLogLevel   string = "logging.app.level"
	BaseURL       string = "base_url"
	CallbackURL   string = "callback_url"
	EnvPrefix     string = "captcha"
	HTTPRetryMax  string = "http.retry_max"
	HTTPTimeout   string = "http.timeout"
	InitialWait   string = "initial_wait"
	LanguagePool  string = "language_pool"
	ListenAddress string = "listen_address"
	PollInterval  string = "poll_interval"
	SoftID        string = "soft_id"
	StorageAccess string = "storage.access_key_id"
	StorageHost   string = "storage.endpoint"
	StorageSecret string = "storage.secret_access_key"
	StorageSSL    string = "storage.use_ssl"
	UseOTLP       string = "logging.use_otlp"
)

var configReady = false
var config Config

func GetConfig() (*Config, error) {
	if configReady {
		logger.Logger.Debug("returning already-loaded config")
		return &config, nil
	}
	logger.Logger.Info("loading config")

	loaded, err := load(viper.New())
	if err != nil {
		configReady = false
		return nil, err
	}

	config = *loaded
	configReady = true
	return &config, nil
}

// Forget the loaded config, the next GetConfig reads it again
func Reset() {
	configReady = false
	config = Config{}
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("captcha")

	v.AddConfigPath("/etc/captcha-solver/")
	v.AddConfigPath(".")

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.AutomaticEnv()

	// workaround for https://github.com/spf13/viper/issues/761
	// keys without a default must be bound explicitly to unmarshal from env
	for _, key := range []string{APIKey, CallbackURL, StorageHost, StorageAccess, StorageSecret} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault(BaseURL, solver.DefaultBaseURL)
	v.SetDefault(LanguagePool, string(solver.LanguagePoolEn))
	v.SetDefault(PollInterval, solver.DefaultPollInterval)
	// zero waits as long as the task kind usually takes
	v.SetDefault(InitialWait, time.Duration(0))
	v.SetDefault(SoftID, solver.DefaultSoftID)
	v.SetDefault(HTTPTimeout, solver.DefaultTimeout)
	v.SetDefault(HTTPRetryMax, solver.DefaultRetryMax)
	v.SetDefault(ListenAddress, "[::]:1325")
	v.SetDefault(AppLogLevel, int(slog.LevelInfo))
	v.SetDefault(UseOTLP, false)
	v.SetDefault(StorageSSL, true)

	err := v.ReadInConfig()
	if err != nil {
		// ignore config file not found to allow pure env config
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	valid := validator.Create()
	if err := valid.Validate(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// Client options matching the config
func (c *Config) ClientOptions(l *slog.Logger) []solver.Option {
	opts := []solver.Option{
		solver.WithBaseURL(c.BaseURL),
		solver.WithLanguagePool(solver.LanguagePool(c.LanguagePool)),
		solver.WithPollInterval(c.PollInterval),
		solver.WithRetryMax(c.HTTP.RetryMax),
		solver.WithTimeout(c.HTTP.Timeout),
		solver.WithLogger(l),
	}
	if c.InitialWait > 0 {
		opts = append(opts, solver.WithInitialWait(c.InitialWait))
	}
	if c.SoftID != 0 {
		opts = append(opts, solver.WithSoftID(c.SoftID))
	}
	if c.CallbackURL != "" {
		opts = append(opts, solver.WithCallbackURL(c.CallbackURL))
	}
	return opts
}
