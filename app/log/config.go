package log

import (
	"github.com/xtls/xrelay/common/log"
)

// LogType selects where a logger writes.
type LogType int32

const (
	LogType_None LogType = iota
	LogType_Console
	LogType_File
	LogType_Stderr
)

var logTypeName = map[LogType]string{
	LogType_None:    "None",
	LogType_Console: "Console",
	LogType_File:    "File",
	LogType_Stderr:  "Stderr",
}

func (t LogType) String() string {
	if name, ok := logTypeName[t]; ok {
		return name
	}
	return "Unknown"
}

// Config of the log instance.
type Config struct {
	ErrorLogType  LogType
	ErrorLogLevel log.Severity
	ErrorLogPath  string

	AccessLogType LogType
	AccessLogPath string

	// MaskAddress hides client addresses in log lines: "half", "quarter" or "full".
	MaskAddress string
}
