package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Build flag for debug mode - can be overridden at build time
// go build -ldflags "-X github.com/astrolabe-dev/astrolabe/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// MCPMode tracks if we're running as an MCP stdio server (set by main).
// When serving MCP, stdout/stderr must stay clean of diagnostics.
var MCPMode = false

// debugOutput is the writer for debug output (nil means no output)
var debugOutput io.Writer

var debugMutex sync.Mutex

// SetMCPMode enables MCP mode which suppresses all debug output to stdio
func SetMCPMode(enabled bool) {
	MCPMode = enabled
}

// SetDebugOutput sets a custom writer for debug output.
// Pass nil to disable debug output entirely.
func SetDebugOutput(w io.Writer) {
	debugMutex.Lock()
	defer debugMutex.Unlock()
	debugOutput = w
}

// Enabled reports whether debug logging is active.
func Enabled() bool {
	if MCPMode {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	return os.Getenv("ASTROLABE_DEBUG") != ""
}

// Logf writes a formatted debug message when debugging is enabled.
func Logf(format string, args ...interface{}) {
	if !Enabled() {
		return
	}
	debugMutex.Lock()
	defer debugMutex.Unlock()
	w := debugOutput
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "[debug] "+format+"\n", args...)
}
