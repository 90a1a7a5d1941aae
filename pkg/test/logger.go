// SPDX-License-Identifier: AGPL-3.0-only

package test

import (
	"testing"

	"github.com/go-kit/log"
)

type testingLogger struct {
	t testing.TB
}

// NewTestingLogger returns a logger writing to the test log, so output only
// shows up for failing or verbose tests.
func NewTestingLogger(t testing.TB) log.Logger {
	return log.NewLogfmtLogger(log.NewSyncWriter(&testingLogger{t: t}))
}

func (l *testingLogger) Write(p []byte) (int, error) {
	l.t.Helper()
	l.t.Log(string(p))
	return len(p), nil
}

// RecordingLogger keeps every logged key/value list.
type RecordingLogger struct {
	Lines [][]interface{}
}

func (l *RecordingLogger) Log(keyvals ...interface{}) error {
	l.Lines = append(l.Lines, keyvals)
	return nil
}

// Values returns the value logged under key in every line that has it.
func (l *RecordingLogger) Values(key string) []interface{} {
	var values []interface{}
	for _, line := range l.Lines {
		for i := 0; i+1 < len(line); i += 2 {
			if k, ok := line[i].(string); ok && k == key {
				values = append(values, line[i+1])
			}
		}
	}
	return values
}
