package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DBPath               string
	UIStatePath          string
	DesktopNotifications bool
	AutoGenerate         bool
	HistoryLimit         int
	AutoRefreshMinutes   int
	SchedulerBuffer      int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               "recapd.db",
		DesktopNotifications: false,
		AutoGenerate:         false,
		HistoryLimit:         14,
		AutoRefreshMinutes:   60,
		SchedulerBuffer:      64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("RECAPD_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("RECAPD_UI_STATE_PATH")); v != "" {
		cfg.UIStatePath = v
	}
	if v, ok := getEnvBool("RECAPD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool("RECAPD_AUTO_GENERATE"); ok {
		cfg.AutoGenerate = v
	}
	if v, ok := getEnvInt("RECAPD_HISTORY_LIMIT"); ok && v > 0 {
		cfg.HistoryLimit = v
	}
	if v, ok := getEnvInt("RECAPD_AUTO_REFRESH_MINUTES"); ok && v > 0 {
		cfg.AutoRefreshMinutes = v
	}
	if v, ok := getEnvInt("RECAPD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
