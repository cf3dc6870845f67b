package config

import (
	"github.com/spf13/viper"
	"strconv"
	"strings"
	"sync"
)

var once sync.Once

func InitConfig() {
	once.Do(func() {
		viper.AutomaticEnv()

		viper.BindEnv("metrics_port", "METRICS_PORT")
		viper.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
		viper.BindEnv("allowed_users", "ALLOWED_USERS")
		viper.BindEnv("auth_enabled", "AUTH_ENABLED")
		viper.BindEnv("meetup_hour", "MEETUP_HOUR")
		viper.BindEnv("http_timeout_seconds", "HTTP_TIMEOUT_SECONDS")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("lang", "LANG")

		viper.SetDefault("metrics_port", 9090)
		viper.SetDefault("auth_enabled", false)
		viper.SetDefault("meetup_hour", 20)
		viper.SetDefault("http_timeout_seconds", 10)
		viper.SetDefault("debug", false)
		viper.SetDefault("lang", "en")
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetInt(key string) int {
	InitConfig()
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}

// GetInt64Slice parses a comma-separated list of integer IDs.
// Malformed entries are skipped.
func GetInt64Slice(key string) []int64 {
	InitConfig()
	raw := viper.GetString(key)
	if raw == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
