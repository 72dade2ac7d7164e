package config

import (
	"bytes"
	"testing"
)

func TestExitfWritesMessageAndExitsWithOne(t *testing.T) {
	var out bytes.Buffer
	var code int
	prevOut, prevExit := exitOutput, exitFunc
	exitOutput = &out
	exitFunc = func(c int) { code = c }
	t.Cleanup(func() {
		exitOutput = prevOut
		exitFunc = prevExit
	})

	Exitf("fatal: %s", "session store unavailable")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := out.String(); got != "fatal: session store unavailable\n" {
		t.Fatalf("output = %q", got)
	}
}
