// main is the entry point for the sweeplens CLI.
package main

import (
	"github.com/huangsam/sweeplens/cmd"
	"github.com/huangsam/sweeplens/internal/contract"
	"github.com/huangsam/sweeplens/internal/runstore"
)

func main() {
	err := cmd.Execute()

	// Close stores before a potential exit, since LogFatal does not
	// run deferred calls.
	runstore.CloseStores()

	if err != nil {
		contract.LogFatal("Cannot execute command", err)
	}
}
