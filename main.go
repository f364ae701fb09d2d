// main is the entry point for the tradeoff CLI.
package main

import (
	"github.com/huangsam/tradeoff/cmd"
	"github.com/huangsam/tradeoff/internal/contract"
	"github.com/huangsam/tradeoff/internal/iocache"
)

func main() {
	cmd.SetRunManager(iocache.Manager)
	defer iocache.CloseStores()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		iocache.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
