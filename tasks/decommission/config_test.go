package decommission

import (
	"decommission/base"
	"decommission/base/utils"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValues() map[string]string {
	return map[string]string{
		"TOKEN":        "tkn",
		"ORGANIZATION": "acme",
		"APPLICATION":  "checkout",
		"TIMEOUT_DAYS": "7",
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(utils.NewEnvSource(validValues()))
	require.NoError(t, err)
	assert.Equal(t, "tkn", cfg.Token)
	assert.Equal(t, "acme", cfg.Organization)
	assert.Equal(t, []string{"checkout"}, cfg.Applications)
	assert.Equal(t, 7, cfg.TimeoutDays)
	assert.Equal(t, base.TidewaysURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 0, cfg.APIMaxRetries)
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.DiscoverApplications)
}

func TestLoadConfigApplicationList(t *testing.T) {
	values := validValues()
	delete(values, "APPLICATION")
	values["APPLICATIONS"] = " checkout, shop ,, search "
	cfg, err := LoadConfig(utils.NewEnvSource(values))
	require.NoError(t, err)
	assert.Equal(t, []string{"checkout", "shop", "search"}, cfg.Applications)
}

func TestLoadConfigDiscovery(t *testing.T) {
	values := validValues()
	delete(values, "APPLICATION")
	values["DISCOVER_APPLICATIONS"] = "true"
	cfg, err := LoadConfig(utils.NewEnvSource(values))
	require.NoError(t, err)
	assert.True(t, cfg.DiscoverApplications)
	assert.Empty(t, cfg.Applications)
}

func TestLoadConfigMissingValues(t *testing.T) {
	for _, key := range []string{"TOKEN", "ORGANIZATION", "APPLICATION", "TIMEOUT_DAYS"} {
		values := validValues()
		values[key] = " "
		_, err := LoadConfig(utils.NewEnvSource(values))
		assert.True(t, errors.Is(err, base.ErrConfig), key)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"TIMEOUT_DAYS":    "seven",
		"DRY_RUN":         "sometimes",
		"API_TIMEOUT":     "30",
		"API_MAX_RETRIES": "-1",
	} {
		values := validValues()
		values[key] = value
		_, err := LoadConfig(utils.NewEnvSource(values))
		assert.True(t, errors.Is(err, base.ErrConfig), key)
	}

	values := validValues()
	values["TIMEOUT_DAYS"] = "0"
	_, err := LoadConfig(utils.NewEnvSource(values))
	assert.True(t, errors.Is(err, base.ErrConfig))
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	content := "TOKEN=tkn\nORGANIZATION=acme\nAPPLICATIONS=checkout,shop\nTIMEOUT_DAYS=14\nDRY_RUN=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"checkout", "shop"}, cfg.Applications)
	assert.Equal(t, 14, cfg.TimeoutDays)
	assert.True(t, cfg.DryRun)

	t.Setenv("TIMEOUT_DAYS", "3")
	cfg, err = LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TimeoutDays)
}

func TestLoadConfigFileUnreadable(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.True(t, errors.Is(err, base.ErrConfig))
}
