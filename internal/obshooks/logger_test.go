package obshooks

import "testing"

func TestLoggerDefaultsToNop(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() must never return nil")
	}
}
