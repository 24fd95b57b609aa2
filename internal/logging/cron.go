package logging

import "fmt"

// CronLogger adapts Logger to the robfig/cron Logger interface.
type CronLogger struct {
	logger *Logger
}

// NewCronLogger returns a cron.Logger writing through l.
func NewCronLogger(l *Logger) CronLogger {
	return CronLogger{logger: l}
}

// Info logs routine scheduler messages at debug level; cron is chatty.
func (c CronLogger) Info(msg string, keysAndValues ...interface{}) {
	ev := c.logger.Debug()
	for k, v := range pairs(keysAndValues) {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

// Error logs scheduler failures, including recovered job panics.
func (c CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	ev := c.logger.Error().Err(err)
	for k, v := range pairs(keysAndValues) {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func pairs(keysAndValues []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return out
}
