// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package log provides a leveled logger shared by the whole module. It wraps
// seelog so tests can swap the inner logger and capture output.
package log

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cihub/seelog"
)

var (
	mu     sync.RWMutex
	logger                 = defaultLogger()
	level  seelog.LogLevel = seelog.InfoLvl
)

func defaultLogger() seelog.LoggerInterface {
	l, err := seelog.LoggerFromWriterWithMinLevelAndFormat(os.Stderr, seelog.InfoLvl, "%Date(2006-01-02 15:04:05 MST) | %LEVEL | (%ShortFilePath:%Line) | %Msg%n")
	if err != nil {
		return seelog.Default
	}
	return l
}

// SetupLogger replaces the inner seelog logger. Used at startup and by tests
// that assert on log output.
func SetupLogger(l seelog.LoggerInterface, lvl string) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
	seelogLevel, ok := seelog.LogLevelFromString(lvl)
	if !ok {
		seelogLevel = seelog.InfoLvl
	}
	level = seelogLevel
	logger.SetAdditionalStackDepth(1) //nolint:errcheck
}

// GetLogLevel returns the current log level.
func GetLogLevel() (seelog.LogLevel, error) {
	mu.RLock()
	defer mu.RUnlock()
	if logger == nil {
		return seelog.InfoLvl, errors.New("logger not initialized")
	}
	return level, nil
}

// ChangeLogLevel changes the log level of the current logger.
func ChangeLogLevel(lvl string) error {
	mu.Lock()
	defer mu.Unlock()
	seelogLevel, ok := seelog.LogLevelFromString(lvl)
	if !ok {
		return fmt.Errorf("unknown log level: %s", lvl)
	}
	level = seelogLevel
	return nil
}

func shouldLog(lvl seelog.LogLevel) bool {
	return lvl >= level
}

// Flush flushes the underlying logger.
func Flush() {
	mu.RLock()
	defer mu.RUnlock()
	logger.Flush()
}

// Trace logs at the trace level.
func Trace(v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if shouldLog(seelog.TraceLvl) {
		logger.Trace(v...)
	}
}

// Tracef logs with format at the trace level.
func Tracef(format string, params ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if shouldLog(seelog.TraceLvl) {
		logger.Tracef(format, params...)
	}
}

// Debug logs at the debug level.
func Debug(v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if shouldLog(seelog.DebugLvl) {
		logger.Debug(v...)
	}
}

// Debugf logs with format at the debug level.
func Debugf(format string, params ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if shouldLog(seelog.DebugLvl) {
		logger.Debugf(format, params...)
	}
}

// Info logs at the info level.
func Info(v ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if shouldLog(seelog.InfoLvl) {
		logger.Info(v...)
	}
}

// Infof logs with format at the info level.
func Infof(format string, params ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	if shouldLog(seelog.InfoLvl) {
		logger.Infof(format, params...)
	}
}

// Warn logs at the warn level and returns an error containing the formated log message.
func Warn(v ...interface{}) error {
	mu.RLock()
	defer mu.RUnlock()
	err := errors.New(fmt.Sprint(v...))
	if shouldLog(seelog.WarnLvl) {
		logger.Warn(v...) //nolint:errcheck
	}
	return err
}

// Warnf logs with format at the warn level and returns an error containing the formated log message.
func Warnf(format string, params ...interface{}) error {
	mu.RLock()
	defer mu.RUnlock()
	err := fmt.Errorf(format, params...)
	if shouldLog(seelog.WarnLvl) {
		logger.Warnf(format, params...) //nolint:errcheck
	}
	return err
}

// Error logs at the error level and returns an error containing the formated log message.
func Error(v ...interface{}) error {
	mu.RLock()
	defer mu.RUnlock()
	err := errors.New(fmt.Sprint(v...))
	if shouldLog(seelog.ErrorLvl) {
		logger.Error(v...) //nolint:errcheck
	}
	return err
}

// Errorf logs with format at the error level and returns an error containing the formated log message.
func Errorf(format string, params ...interface{}) error {
	mu.RLock()
	defer mu.RUnlock()
	err := fmt.Errorf(format, params...)
	if shouldLog(seelog.ErrorLvl) {
		logger.Errorf(format, params...) //nolint:errcheck
	}
	return err
}
