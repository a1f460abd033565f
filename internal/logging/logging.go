// Package logging provides the structured Logger every other package in
// this module takes as a collaborator, backed by log/slog. The narrow
// Debugf/Infof/Warnf/Errorf interface (rather than passing *slog.Logger
// everywhere) mirrors the Session.log field oomph-ac-dragonfly's session
// package depends on.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Logger is the logging surface every package in this module depends on.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New returns a Logger writing JSON lines to w at the given level.
func New(w *os.File, level slog.Level) Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(h)}
}

func (s *slogLogger) Debugf(format string, args ...any) {
	s.l.Log(context.Background(), slog.LevelDebug, fmt.Sprintf(format, args...))
}
func (s *slogLogger) Infof(format string, args ...any) {
	s.l.Log(context.Background(), slog.LevelInfo, fmt.Sprintf(format, args...))
}
func (s *slogLogger) Warnf(format string, args ...any) {
	s.l.Log(context.Background(), slog.LevelWarn, fmt.Sprintf(format, args...))
}
func (s *slogLogger) Errorf(format string, args ...any) {
	s.l.Log(context.Background(), slog.LevelError, fmt.Sprintf(format, args...))
}
func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}
