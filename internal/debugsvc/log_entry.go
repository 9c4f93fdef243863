// Package debugsvc implements the async structured logger and the
// breakpoint/step/pause gate the scheduler interposes before every CPU
// instruction, adapted from the teacher's debug package to NovaVM's
// flat 16-bit address space.
package debugsvc

import (
	"fmt"
	"time"
)

// LogLevel is the severity of a log entry.
type LogLevel int

const (
	LogLevelNone LogLevel = iota
	LogLevelError
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelNone:
		return "NONE"
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// Component identifies which subsystem produced a log entry.
type Component string

const (
	ComponentCPU     Component = "CPU"
	ComponentVGC     Component = "VGC"
	ComponentSID     Component = "SID"
	ComponentMusic   Component = "Music"
	ComponentBus     Component = "Bus"
	ComponentNIC     Component = "NIC"
	ComponentXMC     Component = "XMC"
	ComponentDMA     Component = "DMA"
	ComponentSystem  Component = "System"
)

// LogEntry is a single logged event.
type LogEntry struct {
	Timestamp time.Time
	Component Component
	Level     LogLevel
	Message   string
	Data      map[string]interface{}
}

func (e *LogEntry) Format() string {
	timestamp := e.Timestamp.Format("15:04:05.000")
	return fmt.Sprintf("[%s] [%s] %s: %s", timestamp, e.Component, e.Level, e.Message)
}
