package logx

import "log/slog"

// slogAdapter backs the Logger interface with a *slog.Logger.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a Logger writing through the provided *slog.Logger.
func NewSlogAdapter(l *slog.Logger) Logger {
	return &slogAdapter{l: l}
}

func (s *slogAdapter) Debug(msg string, fields ...Field) { s.l.Debug(msg, toSlogArgs(fields)...) }

func (s *slogAdapter) Info(msg string, fields ...Field) { s.l.Info(msg, toSlogArgs(fields)...) }

func (s *slogAdapter) Warn(msg string, fields ...Field) { s.l.Warn(msg, toSlogArgs(fields)...) }

func (s *slogAdapter) Error(msg string, fields ...Field) { s.l.Error(msg, toSlogArgs(fields)...) }

// With returns a Logger carrying fields on every subsequent entry.
func (s *slogAdapter) With(fields ...Field) Logger {
	return &slogAdapter{l: s.l.With(toSlogArgs(fields)...)}
}

// Sync is a no-op; slog handlers write through.
func (s *slogAdapter) Sync() error { return nil }

// toSlogArgs converts logx fields into slog arguments. Error values are
// flattened to their message so the JSON output stays a plain string
// regardless of the concrete error type.
func toSlogArgs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok && err != nil {
			args = append(args, slog.String(f.Key, err.Error()))
			continue
		}
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}
