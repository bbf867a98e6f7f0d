package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Host        string `envconfig:"WEATHER_SERVER_HOST" default:"localhost"`
	Port        string `envconfig:"WEATHER_SERVER_PORT" default:"8082"`
	ReadTimeout int    `envconfig:"WEATHER_SERVER_TIMEOUT" default:"10"`
}

type OpenWeatherMap struct {
	APIKey  string `envconfig:"OPEN_WEATHER_MAP_API_KEY" required:"true"`
	URL     string `envconfig:"OPEN_WEATHER_MAP_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
	Timeout int    `envconfig:"OPEN_WEATHER_MAP_TIMEOUT" default:"10"`
}

type Breaker struct {
	Enabled      bool   `envconfig:"BREAKER_ENABLED" default:"false"`
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type Config struct {
	OpenWeatherMap OpenWeatherMap
	Server         Server
	Breaker        Breaker

	SessionTTL int `envconfig:"SESSION_TTL" default:"30"`

	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/weather-lookup.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/weather-lookup-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.OpenWeatherMap.Timeout) * time.Second
}

func (c *Config) SessionLifetime() time.Duration {
	return time.Duration(c.SessionTTL) * time.Minute
}
