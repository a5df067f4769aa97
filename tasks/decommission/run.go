package decommission

import (
	"context"
	"decommission/base"
	"decommission/base/core"
	"decommission/base/tideways"
	"decommission/base/utils"
	"decommission/tasks"
	"os"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
)

func configure() (Config, error) {
	core.ConfigureApp()
	return LoadConfigFile(utils.Getenv("CONFIG_FILE", DefaultConfigFile))
}

func newClient(cfg Config) *tideways.Client {
	return tideways.NewClient(tideways.Options{
		BaseURL:    cfg.BaseURL,
		Token:      cfg.Token,
		Timeout:    cfg.APITimeout,
		RateLimit:  cfg.APIRateLimit,
		MaxRetries: cfg.APIMaxRetries,
		Debug:      cfg.DebugRequests || log.IsLevelEnabled(log.TraceLevel),
	})
}

func RunDecommission() {
	os.Exit(runDecommission(base.Context))
}

func runDecommission(ctx context.Context) int {
	defer utils.LogPanics(true)

	cfg, err := configure()
	if err != nil {
		utils.LogError("err", err.Error(), "Invalid configuration, nothing processed")
		return 1
	}
	return Execute(ctx, cfg, newClient(cfg), clockwork.NewRealClock())
}

// Execute runs the job against api and returns the process exit code
func Execute(ctx context.Context, cfg Config, api ServerAPI, clock clockwork.Clock) int {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	summary := NewDecommissioner(cfg, api, clock).Run(ctx)
	exitCode := summary.ExitCode()

	if cfg.ReportFile != "" {
		if err := WriteReport(cfg.ReportFile, summary); err != nil {
			utils.LogError("err", err.Error(), "file", cfg.ReportFile, "Report writing failed")
			exitCode = 1
		} else {
			utils.LogInfo("file", cfg.ReportFile, "Report written")
		}
	}

	if exitCode == 0 {
		lastSuccessTime.Set(float64(clock.Now().Unix()))
	}
	if cfg.PrometheusPushGateway != "" {
		tasks.PushMetrics(Metrics(cfg.PrometheusPushGateway))
	}
	return exitCode
}
