package decommission

import (
	"decommission/base"
	"decommission/base/utils"
	"time"

	"github.com/pkg/errors"
)

const DefaultConfigFile = ".deploy_configuration.env"

type Config struct {
	Token        string
	Organization string
	// explicit applications, ignored when DiscoverApplications is set
	Applications         []string
	DiscoverApplications bool
	TimeoutDays          int

	BaseURL       string
	APITimeout    time.Duration
	APIRateLimit  int
	APIMaxRetries int
	DebugRequests bool

	// list expired servers without deleting them
	DryRun                bool
	ReportFile            string
	PrometheusPushGateway string
}

// LoadConfigFile reads job configuration from dotenv file, process environment overrides file values.
func LoadConfigFile(path string) (Config, error) {
	src, err := utils.ReadEnvSource(path)
	if err != nil {
		return Config{}, base.WrapConfigError(err, "Load config")
	}
	return LoadConfig(src)
}

func LoadConfig(src *utils.EnvSource) (Config, error) {
	cfg := Config{
		Token:                 src.GetString("TOKEN", ""),
		Organization:          src.GetString("ORGANIZATION", ""),
		BaseURL:               src.GetString("TIDEWAYS_URL", base.TidewaysURL),
		ReportFile:            src.GetString("REPORT_FILE", ""),
		PrometheusPushGateway: src.GetString("PROMETHEUS_PUSHGATEWAY", ""),
	}
	cfg.Applications = utils.SplitList(src.GetString("APPLICATIONS", src.GetString("APPLICATION", "")))

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	var err error
	cfg.TimeoutDays, err = src.GetInt("TIMEOUT_DAYS", 0)
	collect(err)
	cfg.DiscoverApplications, err = src.GetBool("DISCOVER_APPLICATIONS", false)
	collect(err)
	cfg.APITimeout, err = src.GetDuration("API_TIMEOUT", 30*time.Second)
	collect(err)
	cfg.APIRateLimit, err = src.GetInt("API_RATE_LIMIT", 0)
	collect(err)
	cfg.APIMaxRetries, err = src.GetInt("API_MAX_RETRIES", 0)
	collect(err)
	cfg.DryRun, err = src.GetBool("DRY_RUN", false)
	collect(err)
	cfg.DebugRequests, err = src.GetBool("DEBUG_REQUESTS", false)
	collect(err)
	if len(errs) > 0 {
		return Config{}, base.WrapConfigError(errs[0], "Load config")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, base.WrapConfigError(err, "Load config")
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Token == "":
		return errors.New("TOKEN is required")
	case c.Organization == "":
		return errors.New("ORGANIZATION is required")
	case c.TimeoutDays <= 0:
		return errors.New("TIMEOUT_DAYS is required and must be a positive number of days")
	case !c.DiscoverApplications && len(c.Applications) == 0:
		return errors.New("APPLICATIONS (or APPLICATION) is required unless DISCOVER_APPLICATIONS is enabled")
	case c.APITimeout < 0 || c.APIRateLimit < 0 || c.APIMaxRetries < 0:
		return errors.New("API_TIMEOUT, API_RATE_LIMIT and API_MAX_RETRIES must not be negative")
	}
	return nil
}
