package logger

import (
	"context"
	"fmt"
	"time"

	"go-wfm/internal/config"
	"go-wfm/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the background worker.
type LogEntry struct {
	Level   zapcore.Level
	Message string
	Caller  string
}

// LogRecord is the persisted shape in the "logs" collection.
type LogRecord struct {
	App       string    `bson:"app"`
	Level     string    `bson:"level"`
	Message   string    `bson:"message"`
	Caller    string    `bson:"caller,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000),
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the zap core hook.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop the entry rather than block a request.
		fmt.Println("DB log channel full, dropping:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		record := LogRecord{
			App:       w.appId,
			Level:     entry.Level.String(),
			Message:   entry.Message,
			Caller:    entry.Caller,
			CreatedAt: time.Now().UTC(),
		}

		// Insert failures are ignored; logging must not take the app down.
		w.db.Collection("logs").InsertOne(context.Background(), record)
	}
}
