package conf

import (
	"strings"

	"github.com/xtls/xrelay/app/log"
	"github.com/xtls/xrelay/common/errors"
	clog "github.com/xtls/xrelay/common/log"
)

type LogConfig struct {
	AccessLog   string `json:"access"`
	ErrorLog    string `json:"error"`
	LogLevel    string `json:"loglevel"`
	MaskAddress string `json:"maskAddress"`
}

// Override replaces the fields that are set in o.
func (v *LogConfig) Override(o *LogConfig) {
	if o.AccessLog != "" {
		v.AccessLog = o.AccessLog
	}
	if o.ErrorLog != "" {
		v.ErrorLog = o.ErrorLog
	}
	if o.LogLevel != "" {
		v.LogLevel = o.LogLevel
	}
	if o.MaskAddress != "" {
		v.MaskAddress = o.MaskAddress
	}
}

func logTypeFromPath(path string, console log.LogType) (log.LogType, string) {
	switch strings.ToLower(path) {
	case "":
		return console, ""
	case "none":
		return log.LogType_None, ""
	case "stdout":
		return log.LogType_Console, ""
	case "stderr":
		return log.LogType_Stderr, ""
	default:
		return log.LogType_File, path
	}
}

// Build produces the log config. console is the log type used when no path
// is configured.
func (v *LogConfig) Build(console log.LogType) (*log.Config, error) {
	if v == nil {
		return &log.Config{
			ErrorLogType:  console,
			ErrorLogLevel: clog.Severity_Warning,
			AccessLogType: console,
		}, nil
	}

	config := &log.Config{}
	config.AccessLogType, config.AccessLogPath = logTypeFromPath(v.AccessLog, console)
	config.ErrorLogType, config.ErrorLogPath = logTypeFromPath(v.ErrorLog, console)

	level, ok := clog.ParseSeverity(strings.ToLower(v.LogLevel))
	if !ok {
		return nil, errors.New("unknown log level: ", v.LogLevel)
	}
	config.ErrorLogLevel = level

	switch v.MaskAddress {
	case "", "half", "quarter", "full":
		config.MaskAddress = v.MaskAddress
	default:
		return nil, errors.New("unknown mask address: ", v.MaskAddress)
	}
	return config, nil
}
