package log

import (
	"strings"

	"github.com/xtls/xrelay/common/serial"
)

// Severity of a GeneralMessage. Lower values are more severe.
type Severity int32

const (
	Severity_Unknown Severity = 0
	Severity_Error   Severity = 1
	Severity_Warning Severity = 2
	Severity_Info    Severity = 3
	Severity_Debug   Severity = 4
)

var severityNames = map[Severity]string{
	Severity_Unknown: "Unknown",
	Severity_Error:   "Error",
	Severity_Warning: "Warning",
	Severity_Info:    "Info",
	Severity_Debug:   "Debug",
}

func (s Severity) String() string {
	if name, found := severityNames[s]; found {
		return name
	}
	return serial.Concat("Severity(", int32(s), ")")
}

// ParseSeverity maps a config level ("debug", "info", "warning", "error",
// "none") to a Severity. "none" maps to Severity_Unknown, which no message
// passes.
func ParseSeverity(level string) (Severity, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return Severity_Debug, true
	case "info":
		return Severity_Info, true
	case "", "warning":
		return Severity_Warning, true
	case "error":
		return Severity_Error, true
	case "none":
		return Severity_Unknown, true
	default:
		return Severity_Unknown, false
	}
}
