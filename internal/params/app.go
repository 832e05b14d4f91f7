package params

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Application environment variables.
const (
	EnvRunPath         = "APP_RUN_PATH"
	EnvDataLogRateHz   = "APP_DATA_LOG_RATE_HZ"
	EnvTransmitEnabled = "APP_TRANSMIT_ENABLED"
	EnvPublishSocket   = "APP_PUBLISH_SOCKET"
	EnvLogLevel        = "LOG_LEVEL"
)

// AppVars are the process-level settings of a run.
type AppVars struct {
	// RunPath is the directory holding diagram params and run outputs.
	RunPath string
	// DataLogRateHz is the telemetry rate; 0 disables logging.
	DataLogRateHz float64
	// TransmitEnabled gates datagram telemetry.
	TransmitEnabled bool
	// PublishSocket is the host:port telemetry datagrams go to.
	PublishSocket string
}

// LoadAppVars reads AppVars from the environment with safe defaults:
// empty run path, no logging, transmit enabled, no socket.
func LoadAppVars() (AppVars, error) {
	vars := AppVars{
		RunPath:         os.Getenv(EnvRunPath),
		TransmitEnabled: true,
		PublishSocket:   os.Getenv(EnvPublishSocket),
	}
	if s, ok := os.LookupEnv(EnvDataLogRateHz); ok {
		rate, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || rate < 0 {
			return AppVars{}, &LoadError{Code: ErrCodeInvalidEnv, Message: EnvDataLogRateHz + " must be a non-negative number", Err: err}
		}
		vars.DataLogRateHz = rate
	}
	if s, ok := os.LookupEnv(EnvTransmitEnabled); ok {
		enabled, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return AppVars{}, &LoadError{Code: ErrCodeInvalidEnv, Message: EnvTransmitEnabled + " must be true or false", Err: err}
		}
		vars.TransmitEnabled = enabled
	}
	return vars, nil
}

// LogLevel reads LOG_LEVEL (debug, info, warn, error; case-insensitive).
// Unset or unknown values give info.
func LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(os.Getenv(EnvLogLevel)))); err != nil {
		return slog.LevelInfo
	}
	return level
}
