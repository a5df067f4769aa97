package main

import (
	"decommission/base/core"
	"decommission/base/utils"
	"decommission/platform"
	"decommission/tasks/decommission"
	"log"
	"os"
)

func main() {
	core.HandleSignals()

	defer utils.LogPanics(true)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "decommission":
			decommission.RunDecommission()
			return
		case "platform":
			platform.RunPlatformMock()
			return
		}
	}
	log.Fatal("You need to provide a command")
}
