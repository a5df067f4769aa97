package platform

import (
	"decommission/base"
	"decommission/base/core"
	"decommission/base/utils"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter serves the Tideways servers API backed by store
func NewRouter(store *Store) *gin.Engine {
	app := gin.New()
	app.Use(gin.Recovery())
	app.Use(core.RequestResponseLogger())
	core.InitProbes(app, nil)

	h := handlers{store: store}
	api := app.Group(base.TidewaysAPIPrefix, authenticator(store.token))
	api.GET("/:org/:app", h.applications)
	api.GET("/:org/:app/servers", h.servers)
	api.DELETE("/:org/:app/servers", h.deleteServers)
	return app
}

func platformMock() {
	token := utils.Getenv("PLATFORM_TOKEN", "token")
	org := utils.Getenv("PLATFORM_ORGANIZATION", "demo")
	port := utils.GetIntEnvOrDefault("PLATFORM_PORT", 9001)

	store := NewStore(token)
	if utils.GetBoolEnvOrDefault("PLATFORM_SEED", true) {
		SeedStore(store, org, time.Now())
	}

	utils.Log("port", port, "organization", org).Info("Platform mock starting")
	err := utils.RunServer(base.Context, NewRouter(store), port)
	if err != nil {
		utils.Log("err", err.Error()).Error("Platform mock failed")
		panic(err)
	}
}

func RunPlatformMock() {
	core.ConfigureApp()
	gin.SetMode(gin.ReleaseMode)
	platformMock()
}
