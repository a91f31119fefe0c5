package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup создаёт slog.Logger с JSON-выводом структурированных логов.
// Вывод направляется в переданный writer.
func Setup(w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

// SetupDefault устанавливает JSON-вывод структурированных логов
// в качестве глобального логгера. В продакшене передаётся os.Stdout.
func SetupDefault(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	logger := Setup(w)
	slog.SetDefault(logger)
}
