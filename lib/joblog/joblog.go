// Package joblog writes the append-only audit trail of a pipeline run.
// Each lifecycle event becomes one line of the form
//
//	2025-Aug-29-15:04:05 : ETL Job Started
//
// This file is an output artifact of the job, separate from the slog
// diagnostics.
package joblog

import (
	"fmt"
	"os"
	"time"
)

// TimestampLayout is year-month-day-hour:minute:second with an
// abbreviated month name.
const TimestampLayout = "2006-Jan-02-15:04:05"

type Logger struct {
	file *os.File
	now  func() time.Time
}

// Open appends to the log file at path, creating it if missing.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{file: f, now: time.Now}, nil
}

func (l *Logger) Log(message string) error {
	line := fmt.Sprintf("%s : %s\n", l.now().Format(TimestampLayout), message)
	_, err := l.file.WriteString(line)
	return err
}

func (l *Logger) Close() error {
	return l.file.Close()
}
