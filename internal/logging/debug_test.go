package logging

import (
	"os"
	"testing"
)

func TestDebugEnabled(t *testing.T) {
	// Test with HQ_DEBUG not set
	os.Unsetenv("HQ_DEBUG")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when HQ_DEBUG is not set")
	}

	// Test with HQ_DEBUG set to empty string
	os.Setenv("HQ_DEBUG", "")
	if DebugEnabled() {
		t.Error("DebugEnabled() should return false when HQ_DEBUG is empty")
	}

	// Test with HQ_DEBUG set to any value
	os.Setenv("HQ_DEBUG", "1")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when HQ_DEBUG is set")
	}

	// Test with HQ_DEBUG set to "true"
	os.Setenv("HQ_DEBUG", "true")
	if !DebugEnabled() {
		t.Error("DebugEnabled() should return true when HQ_DEBUG is 'true'")
	}

	// Clean up
	os.Unsetenv("HQ_DEBUG")
}

func TestDebugf(t *testing.T) {
	// This test verifies that Debugf doesn't panic
	// We can't easily capture stdout in tests, so we just ensure it doesn't crash

	// Test with debug disabled
	os.Unsetenv("HQ_DEBUG")
	Debugf("This should not appear: %s", "test")

	// Test with debug enabled
	os.Setenv("HQ_DEBUG", "1")
	Debugf("This should appear: %s", "test")

	// Clean up
	os.Unsetenv("HQ_DEBUG")
}

func TestDebugln(t *testing.T) {
	// This test verifies that Debugln doesn't panic
	// We can't easily capture stdout in tests, so we just ensure it doesn't crash

	// Test with debug disabled
	os.Unsetenv("HQ_DEBUG")
	Debugln("This should not appear")

	// Test with debug enabled
	os.Setenv("HQ_DEBUG", "1")
	Debugln("This should appear")

	// Clean up
	os.Unsetenv("HQ_DEBUG")
}
