package server

import (
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
// and mirroring them to the server log
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	base        core.Logger
}

// NewWebLogger creates a new web logger for a specific render. base may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, base core.Logger) *WebLogger {
	if base == nil {
		base = core.NopLogger{}
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		base:        base,
	}
}

func (wl *WebLogger) Debugf(format string, args ...any) {
	wl.base.Debugf("[%s] "+format, append([]any{wl.renderID}, args...)...)
	wl.send("debug", format, args...)
}

func (wl *WebLogger) Infof(format string, args ...any) {
	wl.base.Infof("[%s] "+format, append([]any{wl.renderID}, args...)...)
	wl.send("info", format, args...)
}

func (wl *WebLogger) Warnf(format string, args ...any) {
	wl.base.Warnf("[%s] "+format, append([]any{wl.renderID}, args...)...)
	wl.send("warning", format, args...)
}

func (wl *WebLogger) Errorf(format string, args ...any) {
	wl.base.Errorf("[%s] "+format, append([]any{wl.renderID}, args...)...)
	wl.send("error", format, args...)
}

// send forwards to the web console if a channel is available, without blocking
func (wl *WebLogger) send(level, format string, args ...any) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		// Channel full, skip
	}
}
