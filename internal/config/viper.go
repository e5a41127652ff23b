package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "AMANE"

type viperConfig struct {
	v *viper.Viper
}

var _ Config = (*viperConfig)(nil)

// New resolves configuration once: defaults, then an optional config
// file (AMANE_CONFIG or ~/.config/amane/config.toml), then AMANE_*
// environment variables which override everything.
func New() Config {
	v := viper.New()

	v.SetDefault("app_name", "Amane")
	v.SetDefault("env", "production")
	v.SetDefault("data_folder", defaultDataFolder())
	v.SetDefault("locale", "fr")
	v.SetDefault("api.base_url", "")
	v.SetDefault("upload.listen_addr", ":8081")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")

	v.SetConfigType("toml")
	if cfgPath := os.Getenv(envPrefix + "_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "amane"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	return &viperConfig{v: v}
}

func defaultDataFolder() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".amane"
	}
	return filepath.Join(dir, "amane")
}

func (c *viperConfig) GetAppName() string       { return c.v.GetString("app_name") }
func (c *viperConfig) GetEnv() string           { return c.v.GetString("env") }
func (c *viperConfig) GetDataFolder() string    { return c.v.GetString("data_folder") }
func (c *viperConfig) GetDefaultLocale() string { return c.v.GetString("locale") }

func (c *viperConfig) GetBaseEndpoint() string { return c.v.GetString("api.base_url") }

func (c *viperConfig) GetUploadListenAddr() string { return c.v.GetString("upload.listen_addr") }
func (c *viperConfig) GetS3Bucket() string         { return c.v.GetString("s3.bucket") }
func (c *viperConfig) GetS3Region() string         { return c.v.GetString("s3.region") }
func (c *viperConfig) GetS3AccessKey() string      { return c.v.GetString("s3.access_key") }
func (c *viperConfig) GetS3SecretKey() string      { return c.v.GetString("s3.secret_key") }
