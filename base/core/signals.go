package core

import (
	"decommission/base"
	"decommission/base/utils"
	"os"
	"os/signal"
	"syscall"
)

// HandleSignals cancels base.Context on SIGTERM/SIGINT, running requests are interrupted
// and the job finishes with failures for the remaining applications.
func HandleSignals() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-c
		utils.LogInfo("signal", sig.String(), "Signal handled, cancelling context")
		base.CancelContext()
	}()
}
