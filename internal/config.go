package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type NovaSchemaConfig struct {
	AppName string `mapstructure:"app_name"`

	Log struct {
		Level  string `mapstructure:"level"`
		Pretty bool   `mapstructure:"pretty"`
	} `mapstructure:"log"`

	Resolver struct {
		// Aliases maps extra type names to built-in keywords, e.g. text: STRING.
		Aliases map[string]string `mapstructure:"aliases"`
	} `mapstructure:"resolver"`

	Server struct {
		Addr     string `mapstructure:"addr"`
		HTTPAddr string `mapstructure:"http_addr"`
		Debug    bool   `mapstructure:"debug"`
	} `mapstructure:"server"`

	Source struct {
		Driver  string        `mapstructure:"driver"`
		DSN     string        `mapstructure:"dsn"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"source"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novaschema")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", "127.0.0.1:8866")
	v.SetDefault("server.http_addr", "")
	v.SetDefault("source.driver", "sqlite")
	v.SetDefault("source.timeout", 15*time.Second)
}

// LoadConfig reads a YAML config file. An empty path yields defaults plus
// NOVASCHEMA_* environment overrides.
func LoadConfig(path string) (*NovaSchemaConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("novaschema")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg NovaSchemaConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
