package corelog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ZerologSink adapts a zerolog.Logger into a Sink. It is the default sink a
// host will typically register at process startup.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink builds a ZerologSink writing to w in zerolog's console
// format, at the given minimum level.
func NewZerologSink(w io.Writer, minLevel Level) *ZerologSink {
	if w == nil {
		w = os.Stdout
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02T15:04:05.000Z07:00"}
	zl := zerolog.New(cw).Level(toZerologLevel(minLevel)).With().Timestamp().Logger()
	return &ZerologSink{logger: zl}
}

func (s *ZerologSink) Log(level Level, message string) {
	s.logger.WithLevel(toZerologLevel(level)).Msg(message)
}

func toZerologLevel(l Level) zerolog.Level {
	switch l {
	case Trace:
		return zerolog.TraceLevel
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warning:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
