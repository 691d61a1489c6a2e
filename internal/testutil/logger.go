// Package testutil provides fixtures, catalogs and loggers for terroir
// package tests.
package testutil

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Logger returns a debug-level logger for handlers and servers under test.
// Entries are replayed through t.Log only when the test fails.
func Logger(t testing.TB) *zap.Logger {
	l, _ := ObservedLogger(t)
	return l
}

// ObservedLogger is Logger plus access to the recorded entries, for tests
// that assert on what a handler logged.
func ObservedLogger(t testing.TB) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(func() {
		if !t.Failed() {
			return
		}
		for _, e := range logs.All() {
			t.Logf("%s\t%s\t%v", e.Level.CapitalString(), e.Message, e.ContextMap())
		}
	})
	return zap.New(core), logs
}
