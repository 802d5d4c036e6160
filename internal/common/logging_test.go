package common

import (
	"bytes"
	"testing"
)

func TestNewLogger_ReturnsNonNil(t *testing.T) {
	logger := NewLogger("info")
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
}

func TestNewLogger_FluentAPI(t *testing.T) {
	// Must not panic
	logger := NewLogger("error")
	logger.Info().Str("key", "value").Msg("test message")
	logger.Warn().Int("count", 42).Msg("warning")
	logger.Error().Err(nil).Msg("error message")
	logger.Debug().Float64("rate", 3.14).Bool("ok", true).Msg("debug")
}

func TestNewLoggerWithOutput_WritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)
	logger.Info().Str("key", "value").Msg("hello")

	if buf.Len() == 0 {
		t.Error("Expected output to provided writer, got empty string")
	}
}

func TestNewDefaultLogger_ReturnsNonNil(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

func TestNewSilentLogger_DiscardsOutput(t *testing.T) {
	logger := NewSilentLogger()
	if logger == nil {
		t.Fatal("NewSilentLogger returned nil")
	}
	// Must not panic
	logger.Info().Str("key", "value").Msg("should be discarded")
	logger.Error().Err(nil).Msg("should be discarded")
	logger.Warn().Msg("should be discarded")
}

func TestNewSilentLogger_DoesNotWriteToGlobalWriters(t *testing.T) {
	// Creating a logger with an output registers a global console writer;
	// the silent logger must not dispatch through it.
	var buf bytes.Buffer
	_ = NewLoggerWithOutput("info", &buf)
	buf.Reset()

	silent := NewSilentLogger()
	silent.Info().Str("key", "value").Msg("this should NOT appear")
	silent.Error().Msg("this should NOT appear either")

	if buf.Len() > 0 {
		t.Errorf("Silent logger wrote %d bytes to global writer: %s", buf.Len(), buf.String())
	}
}

func TestFluentAPI_AllMethodsUsed(t *testing.T) {
	logger := NewSilentLogger()

	// Every ILogEvent method used across the codebase must compile and
	// not panic.
	logger.Info().Str("key", "val").Msg("str")
	logger.Info().Int("key", 1).Msg("int")
	logger.Info().Int64("key", int64(1)).Msg("int64")
	logger.Info().Float64("key", 1.0).Msg("float64")
	logger.Info().Bool("key", true).Msg("bool")
	logger.Info().Err(nil).Msg("err")
	logger.Info().Msgf("formatted %s %d", "string", 42)

	// Chained calls (common pattern)
	logger.Info().Str("a", "1").Str("b", "2").Int("c", 3).Msg("chained")
	logger.Error().Err(nil).Str("symbol", "PKN").Msg("error with context")

	// All log levels
	logger.Debug().Msg("debug")
	logger.Info().Msg("info")
	logger.Warn().Msg("warn")
	logger.Error().Msg("error")
}
