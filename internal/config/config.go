package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const EnvPrefix = "MANTRAD_"

type RuntimeConfig struct {
	DBPath               string        `yaml:"db_path" mapstructure:"db_path"`
	LogFile              string        `yaml:"log_file" mapstructure:"log_file"`
	DesktopNotifications bool          `yaml:"desktop_notifications" mapstructure:"desktop_notifications"`
	Sound                bool          `yaml:"sound" mapstructure:"sound"`
	Language             string        `yaml:"language" mapstructure:"language"`
	MantraSeconds        int           `yaml:"mantra_seconds" mapstructure:"mantra_seconds"`
	PomodoroMinutes      int           `yaml:"pomodoro_minutes" mapstructure:"pomodoro_minutes"`
	PomodoroMinMinutes   int           `yaml:"pomodoro_min_minutes" mapstructure:"pomodoro_min_minutes"`
	PomodoroMaxMinutes   int           `yaml:"pomodoro_max_minutes" mapstructure:"pomodoro_max_minutes"`
	TaskCapacity         int           `yaml:"task_capacity" mapstructure:"task_capacity"`
	FrameInterval        time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"`
	AlarmBuffer          int           `yaml:"alarm_buffer" mapstructure:"alarm_buffer"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:               filepath.Join(Dir(), "mantrad.db"),
		LogFile:              filepath.Join(Dir(), "mantrad.log"),
		DesktopNotifications: false,
		Sound:                false,
		Language:             "",
		MantraSeconds:        15,
		PomodoroMinutes:      10,
		PomodoroMinMinutes:   5,
		PomodoroMaxMinutes:   60,
		TaskCapacity:         10,
		FrameInterval:        100 * time.Millisecond,
		AlarmBuffer:          16,
	}
}

// Dir is the per-user state directory, ~/.mantrad.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mantrad"
	}
	return filepath.Join(home, ".mantrad")
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString(EnvPrefix + "DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString(EnvPrefix + "LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool(EnvPrefix + "DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvBool(EnvPrefix + "SOUND"); ok {
		cfg.Sound = v
	}
	if v, ok := getEnvString(EnvPrefix + "LANG"); ok {
		cfg.Language = v
	}
	if v, ok := getEnvInt(EnvPrefix + "MANTRA_SECONDS"); ok && v > 0 {
		cfg.MantraSeconds = v
	}
	if v, ok := getEnvInt(EnvPrefix + "POMODORO_MINUTES"); ok && v > 0 {
		cfg.PomodoroMinutes = v
	}
	if v, ok := getEnvInt(EnvPrefix + "TASK_CAPACITY"); ok && v > 0 {
		cfg.TaskCapacity = v
	}
	if v, ok := getEnvInt(EnvPrefix + "FRAME_INTERVAL_MS"); ok && v > 0 {
		cfg.FrameInterval = time.Duration(v) * time.Millisecond
	}
	if v, ok := getEnvInt(EnvPrefix + "ALARM_BUFFER"); ok && v > 0 {
		cfg.AlarmBuffer = v
	}
	return cfg
}

// Normalize repairs values a config file may have zeroed or inverted.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	def := DefaultRuntimeConfig()
	if c.MantraSeconds <= 0 {
		c.MantraSeconds = def.MantraSeconds
	}
	if c.PomodoroMinMinutes <= 0 {
		c.PomodoroMinMinutes = def.PomodoroMinMinutes
	}
	if c.PomodoroMaxMinutes < c.PomodoroMinMinutes {
		c.PomodoroMaxMinutes = c.PomodoroMinMinutes
	}
	c.PomodoroMinutes = ClampMinutes(c.PomodoroMinutes, c.PomodoroMinMinutes, c.PomodoroMaxMinutes)
	if c.TaskCapacity <= 0 {
		c.TaskCapacity = def.TaskCapacity
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = def.FrameInterval
	}
	if c.AlarmBuffer <= 0 {
		c.AlarmBuffer = def.AlarmBuffer
	}
	return c
}

func ClampMinutes(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
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
