// Package logger configura el logging estructurado de la aplicación.
// En development escribe consola legible; en cualquier otro entorno emite
// JSON línea a línea, pensado para agregadores.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger expone la API de zerolog por embedding, para inyectarse donde
// haga falta en lugar de depender del logger global.
type Logger struct {
	zerolog.Logger
}

// New construye el logger según entorno y nivel. Un nivel desconocido o
// vacío cae en info. También reemplaza el logger global de zerolog para
// las librerías que escriben por ahí.
func New(env, level string) *Logger {
	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{Logger: zl}
}

// Component devuelve un sublogger etiquetado con el origen de las líneas
// (http, db, migraciones), para filtrar en el agregador.
func (l *Logger) Component(name string) *Logger {
	return &Logger{Logger: l.Logger.With().Str("component", name).Logger()}
}
