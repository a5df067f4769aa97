package core

import (
	"decommission/base/utils"
)

func ConfigureApp() {
	utils.ConfigureLogging()
}

func SetupTestEnvironment() {
	utils.SetenvOrFail("LOG_LEVEL", "debug")
	ConfigureApp()
}
