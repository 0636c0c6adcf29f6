package tokenizer

import (
	"testing"

	"github.com/temirov/codeprompt/internal/types"
)

// TestNewCounterDefaultEncoding verifies that the default encoding counts a
// simple string. The encoding data may need to be fetched, so an unavailable
// tokenizer skips rather than fails.
func TestNewCounterDefaultEncoding(testingHandle *testing.T) {
	counter, counterWarnings, counterError := NewCounter("")
	if counterError != nil {
		testingHandle.Skipf("tokenizer unavailable: %v", counterError)
	}
	if len(counterWarnings) != 0 {
		testingHandle.Fatalf("unexpected warnings: %v", counterWarnings)
	}
	if counter.Name() != DefaultEncodingName {
		testingHandle.Fatalf("expected default encoding %s, got %s", DefaultEncodingName, counter.Name())
	}

	tokenCount, countError := counter.CountString("hello world")
	if countError != nil {
		testingHandle.Fatalf("CountString failed: %v", countError)
	}
	if tokenCount <= 0 {
		testingHandle.Fatalf("expected a positive token count, got %d", tokenCount)
	}
}

// TestNewCounterUnknownEncodingFallsBack verifies the degradation contract:
// an unknown encoding name yields the default encoding plus a warning.
func TestNewCounterUnknownEncodingFallsBack(testingHandle *testing.T) {
	counter, counterWarnings, counterError := NewCounter("not-a-real-encoding")
	if counterError != nil {
		testingHandle.Skipf("tokenizer unavailable: %v", counterError)
	}
	if counter.Name() != DefaultEncodingName {
		testingHandle.Fatalf("expected fallback to %s, got %s", DefaultEncodingName, counter.Name())
	}
	if len(counterWarnings) != 1 || counterWarnings[0].Kind != types.WarningKindTokenizer {
		testingHandle.Fatalf("expected one tokenizer warning, got %v", counterWarnings)
	}
}
