package logger

import (
	"go.uber.org/zap/zapcore"
)

// DBCore wraps the console core and mirrors warn+ entries to the DB writer.
type DBCore struct {
	zapcore.Core
	writer *DBLogWriter
}

func NewDBCore(baseCore zapcore.Core, writer *DBLogWriter) zapcore.Core {
	return &DBCore{
		Core:   baseCore,
		writer: writer,
	}
}

// Write is called for every log entry
func (c *DBCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= zapcore.WarnLevel {
		c.writer.AddLog(LogEntry{
			Level:   entry.Level,
			Message: entry.Message,
			Caller:  entry.Caller.Function,
		})
	}

	return c.Core.Write(entry, fields)
}

func (c *DBCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
