package app

import (
	"bytes"
	"os"
	"testing"

	"github.com/vk/taglib/internal/testutil"
)

// setupAppTest creates an App that exports into the returned buffer and logs
// at debug level into the returned log buffer.
func setupAppTest(t *testing.T, cfg Config) (*App, *bytes.Buffer, *testutil.SafeBuffer) {
	t.Helper()

	logBuffer := &testutil.SafeBuffer{}
	out := &bytes.Buffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(out, logBuffer, &cfg)

	t.Cleanup(func() {
		if os.Getenv("TAGLIB_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, out, logBuffer
}
