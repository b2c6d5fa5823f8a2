// Package logger envuelve zerolog con un logger de proceso y helpers para
// obtener el logger asociado a cada request.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Options configura el logger estructurado.
type Options struct {
	ServiceName string
	Level       string
	Format      string
	Output      io.Writer
}

// Logger embebe zerolog.Logger para exponer toda su API.
type Logger struct {
	zerolog.Logger
}

// New crea el logger del proceso. Por defecto escribe JSON a stdout.
func New(opts Options) *Logger {
	var output io.Writer = opts.Output
	if output == nil {
		output = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	}

	base := zerolog.New(output).
		With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger().
		Level(ParseLevel(opts.Level))

	return &Logger{base}
}

// Nop devuelve un logger que descarta todo. Útil en tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// ParseLevel traduce un nivel textual; cualquier valor inválido cae en info.
func ParseLevel(value string) zerolog.Level {
	levelString := strings.ToLower(strings.TrimSpace(value))
	if levelString == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(levelString)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// WithField devuelve un logger hijo con un campo string adicional.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{l.Logger.With().Str(key, value).Logger()}
}

// FromContext devuelve el logger del contexto.
// Si no hay ninguno, zerolog devuelve un logger deshabilitado, nunca nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*zerolog.Ctx(ctx)}
}

// FromRequest es un atajo de FromContext para handlers HTTP.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// AddField enriquece en el lugar el logger guardado en ctx, de modo que
// los middlewares externos también vean el campo nuevo.
func AddField(ctx context.Context, key, value string) {
	zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str(key, value)
	})
}
