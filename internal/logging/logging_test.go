package logging

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("text"); got != FormatText {
		t.Errorf("ParseFormat(text) = %d, want FormatText", got)
	}
	if got := ParseFormat("json"); got != FormatJSON {
		t.Errorf("ParseFormat(json) = %d, want FormatJSON", got)
	}
	if got := ParseFormat("anything"); got != FormatJSON {
		t.Errorf("ParseFormat(anything) = %d, want FormatJSON", got)
	}
}

func TestInitLogger(t *testing.T) {
	InitLogger(LevelDebug, FormatText)
	if GetLogger() == nil {
		t.Fatal("GetLogger() = nil after InitLogger")
	}

	// Helpers must not panic regardless of level.
	Debug("debug message", "k", "v")
	Info("info message")
	Warn("warn message")
	Error("error message")
	ParseEvent("kjv", 66, 1189, 31102)
	LookupEvent("Gen 1:1", true)
	WebSocketEvent("client_connected", 1)
	ServerStartup(":8080")

	InitLogger(LevelInfo, FormatJSON)
}
