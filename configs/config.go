package configs

import (
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	ClientOrigin []string `mapstructure:"client_origin"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

type JWTConfig struct {
	Secret    string `mapstructure:"secret"`
	ExpiresIn int    `mapstructure:"expires_in"` // hours
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// WeightsConfig holds the default compatibility weights. Weights supplied on
// the admin trigger endpoint override these for a single run.
type WeightsConfig struct {
	Industry        float64 `mapstructure:"industry"`
	Company         float64 `mapstructure:"company"`
	NetworkingGoals float64 `mapstructure:"networking_goals"`
	JobTitle        float64 `mapstructure:"job_title"`
}

type MatchingConfig struct {
	CronSpec        string        `mapstructure:"cron_spec"`
	MeetingLink     string        `mapstructure:"meeting_link"`
	CacheMaxEntries int           `mapstructure:"cache_max_entries"`
	CacheTTLMinutes int           `mapstructure:"cache_ttl_minutes"`
	Weights         WeightsConfig `mapstructure:"weights"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Matching MatchingConfig `mapstructure:"matching"`
}

// Load reads config.yaml from ./configs or the working directory.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("jwt.expires_in", 72)
	viper.SetDefault("matching.cron_spec", "0 9 1 * *")
	viper.SetDefault("matching.meeting_link", "https://meet.jit.si/networking-match")
	viper.SetDefault("matching.cache_max_entries", 10000)
	viper.SetDefault("matching.cache_ttl_minutes", 60)
	viper.SetDefault("matching.weights.industry", 35)
	viper.SetDefault("matching.weights.company", 20)
	viper.SetDefault("matching.weights.networking_goals", 30)
	viper.SetDefault("matching.weights.job_title", 15)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
