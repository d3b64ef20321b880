package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger = slog.Default()

// Init sets up the global logger. Production uses JSON output,
// everything else gets the text handler for readability.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets call sites pass bare values (usually an error) instead of
// strict key-value pairs.
func normalize(args []any) []any {
	out := make([]any, 0, len(args))
	i := 0
	for i < len(args) {
		switch v := args[i].(type) {
		case slog.Attr:
			out = append(out, v)
			i++
		case error:
			out = append(out, slog.Any("error", v))
			i++
		case string:
			if i+1 < len(args) {
				out = append(out, v, args[i+1])
				i += 2
			} else {
				out = append(out, slog.String("detail", v))
				i++
			}
		default:
			out = append(out, slog.Any("detail", v))
			i++
		}
	}
	return out
}
