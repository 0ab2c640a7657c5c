package config

import (
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/viper"
)

var (
	// appConfig holds a *Config so reads never take a lock.
	appConfig atomic.Value
	configMu  sync.Mutex // write-side mutex only
	configDir = "config"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Media    MediaConfig    `mapstructure:"media"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type ServerConfig struct {
	Port      string `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	MaxBodyMB int    `mapstructure:"max_body_mb"` // non-upload request body cap
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"` // database name
	SSL      bool   `mapstructure:"ssl"`  // enable TLS/SSL
}

type JWTConfig struct {
	AccessSecret       string `mapstructure:"access_secret"`
	AccessExpiryHours  int    `mapstructure:"access_expiry_hours"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours"`
}

type UploadConfig struct {
	TempPath  string `mapstructure:"temp_path"`
	MaxSizeMB int    `mapstructure:"max_size_mb"` // multipart upload body cap
}

// MediaConfig points at an S3-compatible object store (AWS, MinIO, ...)
// where avatars and cover images end up.
type MediaConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// Get returns a snapshot of the current configuration.
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

func InitConfig(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	enforceSecretSafety()
	log.Println("✅ configuration loaded")
}

func initViper(customConfigDir string) *viper.Viper {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_body_mb", 2)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/vidtube.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "root")
	v.SetDefault("database.name", "vidtube")
	v.SetDefault("database.ssl", false)
	v.SetDefault("jwt.access_secret", "")
	v.SetDefault("jwt.access_expiry_hours", 24)
	v.SetDefault("jwt.refresh_secret", "")
	v.SetDefault("jwt.refresh_expiry_hours", 240)
	v.SetDefault("upload.temp_path", "public/temp")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("media.endpoint", "")
	v.SetDefault("media.region", "us-east-1")
	v.SetDefault("media.bucket", "vidtube-media")
	v.SetDefault("media.access_key", "")
	v.SetDefault("media.secret_key", "")
	v.SetDefault("media.public_base_url", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "vidtube")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Println("⚠️  no config file found, using env vars and defaults only")
		} else {
			log.Fatalf("❌ failed to read config file: %v", err)
		}
	}

	// Env override rule: every key is reachable as VIDTUBE_<SECTION>_<KEY>,
	// e.g. jwt.access_secret -> VIDTUBE_JWT_ACCESS_SECRET.
	v.SetEnvPrefix("VIDTUBE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// loadAndStore unmarshals and atomically swaps the global config.
func loadAndStore(v *viper.Viper) {
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		log.Printf("❌ failed to parse configuration: %v", err)
		return
	}

	if tempConfig.Server.Mode != "release" {
		if tempConfig.JWT.AccessSecret == "" {
			log.Println("⚠️  [dev mode] jwt.access_secret unset, using an insecure default")
			tempConfig.JWT.AccessSecret = "vidtube_access_secret"
		}
		if tempConfig.JWT.RefreshSecret == "" {
			log.Println("⚠️  [dev mode] jwt.refresh_secret unset, using an insecure default")
			tempConfig.JWT.RefreshSecret = "vidtube_refresh_secret"
		}
	}

	appConfig.Store(&tempConfig)
}

func enforceSecretSafety() {
	// Refuse to start in release mode with missing or default token secrets.
	curr := Get()
	if curr.Server.Mode != "release" {
		return
	}
	if curr.JWT.AccessSecret == "" || curr.JWT.AccessSecret == "vidtube_access_secret" {
		log.Fatal("❌ [security] release mode requires a real jwt.access_secret\nset VIDTUBE_JWT_ACCESS_SECRET or jwt.access_secret in the config file")
	}
	if curr.JWT.RefreshSecret == "" || curr.JWT.RefreshSecret == "vidtube_refresh_secret" {
		log.Fatal("❌ [security] release mode requires a real jwt.refresh_secret\nset VIDTUBE_JWT_REFRESH_SECRET or jwt.refresh_secret in the config file")
	}
	if curr.JWT.AccessSecret == curr.JWT.RefreshSecret {
		log.Fatal("❌ [security] access and refresh token secrets must differ")
	}
}

// SetForTest replaces the global config. Test helper only.
func SetForTest(c Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig.Store(&c)
}
