// Command terroir scores wine regions and grape varieties against a
// growing environment. It serves the scoring engine over HTTP, a live
// websocket and MCP, and runs one-off simulations from the terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
