package logger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx/fxevent"
)

type fxLogger struct {
	l zerolog.Logger
}

var _ fxevent.Logger = (*fxLogger)(nil)

// Fx routes fx lifecycle events into zerolog. Successful wiring steps are logged at debug
// level; failures are logged as errors.
func Fx() fxevent.Logger {
	return &fxLogger{
		l: log.Logger.
			With().
			Str("evt.name", "fx.init").
			Logger(),
	}
}

func (l *fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		l.hook("OnStart", e.FunctionName, e.CallerName, e.Err)
	case *fxevent.OnStopExecuted:
		l.hook("OnStop", e.FunctionName, e.CallerName, e.Err)
	case *fxevent.Provided:
		if e.Err != nil {
			l.l.Error().Err(e.Err).Str("module", e.ModuleName).Msg("fx: error encountered while applying options")
			return
		}
		l.l.Trace().Str("constructor", e.ConstructorName).Str("types", strings.Join(e.OutputTypeNames, ", ")).Msg("fx: provided")
	case *fxevent.Invoked:
		if e.Err != nil {
			l.l.Error().Err(e.Err).Str("function", e.FunctionName).Str("stack", e.Trace).Msg("fx: invoke failed")
			return
		}
		l.l.Trace().Str("function", e.FunctionName).Msg("fx: invoked")
	case *fxevent.Started:
		if e.Err != nil {
			l.l.Error().Err(e.Err).Msg("fx: start failed")
			return
		}
		l.l.Debug().Msg("fx: started")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.l.Error().Err(e.Err).Msg("fx: stop failed")
			return
		}
		l.l.Debug().Msg("fx: stopped")
	case *fxevent.RolledBack:
		l.l.Error().Err(e.Err).Msg("fx: start failed, rolled back")
	}
}

func (l *fxLogger) hook(kind, function, caller string, err error) {
	if err != nil {
		l.l.Error().Err(err).Str("callee", function).Str("caller", caller).Msgf("fx: %s hook failed", kind)
		return
	}
	l.l.Trace().Str("callee", function).Str("caller", caller).Msgf("fx: %s hook executed", kind)
}
