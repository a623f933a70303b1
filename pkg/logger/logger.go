package logger

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var once sync.Once

// Init configures the global zerolog logger. Production writes JSON lines, anything
// else gets the console writer. Only the first call has an effect.
func Init(appName, logLevel string, production bool) {
	once.Do(func() {
		zerolog.SetGlobalLevel(parseLevel(logLevel))

		if production {
			log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("applicationName", appName).Logger()
		} else {
			log.Logger = zerolog.New(zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: "02-01-2006 15:04:05.000",
				FormatLevel: func(i interface{}) string {
					return strings.ToUpper(fmt.Sprintf("%-6s", i))
				},
				FieldsExclude: []string{"applicationName"},
			}).With().Timestamp().Str("applicationName", appName).Logger()
		}
		log.Logger = log.With().Caller().Logger()

		// short caller: file.go:line
		zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
			parts := strings.Split(file, "/")
			return parts[len(parts)-1] + ":" + strconv.Itoa(line)
		}

		log.Info().Str("level", zerolog.GlobalLevel().String()).Msg("Logger initialized!")
	})
}

func parseLevel(logLevel string) zerolog.Level {
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED":
		return zerolog.Disabled
	default:
		log.Warn().Msgf("Unknown log level %q, defaulting to INFO", logLevel)
		return zerolog.InfoLevel
	}
}
