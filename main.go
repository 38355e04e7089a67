// Entrypoint for the decode CLI, delegating to cmd/decode's cobra root command.

package main

import (
	"github.com/nbldpc/decoder/cmd/decode"
)

func main() {
	decode.Execute()
}
