// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package logger holds the process-wide logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const projectName = "gwts"

var (
	once          sync.Once
	projectLogger *logrus.Logger
)

func base() *logrus.Logger {
	once.Do(func() {
		projectLogger = logrus.New()
		projectLogger.SetOutput(os.Stderr)
		projectLogger.SetLevel(logrus.InfoLevel)
		projectLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return projectLogger
}

// GetProjectLogger returns the shared logger tagged with the project name
func GetProjectLogger() *logrus.Entry {
	return base().WithField("name", projectName)
}

// Configure sets the level and output format of the shared logger.
// Format is "text" or "json".
func Configure(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	l := base()
	l.SetLevel(lvl)

	switch format {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	return nil
}

// SetOutput redirects the shared logger
func SetOutput(w io.Writer) {
	base().SetOutput(w)
}
