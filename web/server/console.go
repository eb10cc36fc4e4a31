package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warn", "error"
}

// Console keeps the most recent log messages for the /api/console endpoint
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

// NewConsole creates a console that retains up to limit messages
func NewConsole(limit int) *Console {
	return &Console{limit: limit}
}

// Add appends a message, dropping the oldest when full
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit <= 0 {
		return
	}
	if len(c.messages) == c.limit {
		copy(c.messages, c.messages[1:])
		c.messages = c.messages[:c.limit-1]
	}
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the retained messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ConsoleMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// ConsoleHandler is a slog.Handler that copies records into a Console
// before passing them to the next handler
type ConsoleHandler struct {
	next    slog.Handler
	console *Console
	attrs   []slog.Attr
}

// NewConsoleHandler wraps next so every record it handles also reaches console
func NewConsoleHandler(next slog.Handler, console *Console) *ConsoleHandler {
	return &ConsoleHandler{next: next, console: console}
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value)
		return true
	})

	h.console.Add(ConsoleMessage{
		Message:   sb.String(),
		Timestamp: r.Time,
		Level:     strings.ToLower(r.Level.String()),
	})
	return h.next.Handle(ctx, r)
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &ConsoleHandler{next: h.next.WithAttrs(attrs), console: h.console, attrs: merged}
}

// Groups are flattened in the console copy
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return &ConsoleHandler{next: h.next.WithGroup(name), console: h.console, attrs: h.attrs}
}
