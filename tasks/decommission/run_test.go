package decommission

import (
	"context"
	"decommission/base"
	"decommission/base/utils"
	"decommission/platform"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func platformServer(t *testing.T) (*httptest.Server, *platform.Store) {
	store := platform.NewStore("tkn")
	platform.SeedStore(store, "acme", testNow)
	srv := httptest.NewServer(platform.NewRouter(store))
	t.Cleanup(srv.Close)
	return srv, store
}

func platformConfig(srv *httptest.Server, apps ...string) Config {
	cfg := testConfig(apps...)
	cfg.BaseURL = srv.URL
	cfg.APITimeout = 5 * time.Second
	return cfg
}

func TestExecuteAgainstPlatform(t *testing.T) {
	srv, store := platformServer(t)
	cfg := platformConfig(srv, "checkout", "shop", "search")
	cfg.ReportFile = filepath.Join(t.TempDir(), "report.csv")

	code := Execute(context.Background(), cfg, newClient(cfg), clockwork.NewFakeClockAt(testNow))
	assert.Equal(t, 0, code)
	assert.Equal(t, float64(testNow.Unix()), testutil.ToFloat64(lastSuccessTime))

	servers, _, _ := store.Servers("acme", "checkout")
	require.Len(t, servers, 1)
	assert.Equal(t, "web-1", servers[0].Server)
	shop, _, _ := store.Servers("acme", "shop")
	assert.Len(t, shop, 1)

	data, err := os.ReadFile(cfg.ReportFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "checkout,web-2")
	assert.Contains(t, string(data), "checkout,worker-1")
}

func TestExecuteAgainstPlatformDiscovery(t *testing.T) {
	srv, store := platformServer(t)
	cfg := platformConfig(srv)
	cfg.DiscoverApplications = true
	cfg.TimeoutDays = 1

	code := Execute(context.Background(), cfg, newClient(cfg), clockwork.NewFakeClockAt(testNow))
	assert.Equal(t, 0, code)
	servers, _, _ := store.Servers("acme", "checkout")
	assert.Len(t, servers, 1)
	shop, _, _ := store.Servers("acme", "shop")
	assert.Empty(t, shop)
}

func TestExecuteAgainstPlatformMalformed(t *testing.T) {
	srv, store := platformServer(t)
	store.SetRawServers("acme", "checkout", []byte("not-json"))
	cfg := platformConfig(srv, "checkout", "shop")
	cfg.TimeoutDays = 1

	code := Execute(context.Background(), cfg, newClient(cfg), clockwork.NewFakeClockAt(testNow))
	assert.Equal(t, 1, code)
	// the second application is still processed
	shop, _, _ := store.Servers("acme", "shop")
	assert.Empty(t, shop)
}

func TestExecuteAgainstPlatformUnauthorized(t *testing.T) {
	srv, store := platformServer(t)
	cfg := platformConfig(srv, "checkout")
	cfg.Token = "wrong"

	code := Execute(context.Background(), cfg, newClient(cfg), clockwork.NewFakeClockAt(testNow))
	assert.Equal(t, 1, code)
	servers, _, _ := store.Servers("acme", "checkout")
	assert.Len(t, servers, 3)
}

func TestExecuteReportFailure(t *testing.T) {
	api := newFakeAPI()
	cfg := testConfig("search")
	cfg.ReportFile = filepath.Join(t.TempDir(), "missing", "report.csv")
	assert.Equal(t, 1, Execute(context.Background(), cfg, api, clockwork.NewFakeClockAt(testNow)))
}

func TestRunDecommissionConfigFile(t *testing.T) {
	srv, store := platformServer(t)
	path := filepath.Join(t.TempDir(), "deploy.env")
	content := "TOKEN=tkn\nORGANIZATION=acme\nAPPLICATION=checkout\nTIMEOUT_DAYS=7\nTIDEWAYS_URL=" + srv.URL + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DRY_RUN", "true")

	assert.Equal(t, 0, runDecommission(base.Context))
	servers, _, _ := store.Servers("acme", "checkout")
	assert.Len(t, servers, 3)
}

func TestRunDecommissionMissingConfig(t *testing.T) {
	hook := utils.NewTestLogHook()
	log.AddHook(hook)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, 1, runDecommission(base.Context))
	assert.NotNil(t, hook.FindEntry("Invalid configuration, nothing processed"))
}

func TestExecutePushesMetrics(t *testing.T) {
	var paths []string
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	cfg := testConfig("search")
	cfg.PrometheusPushGateway = gateway.URL
	assert.Equal(t, 0, Execute(context.Background(), cfg, newFakeAPI(), clockwork.NewFakeClockAt(testNow)))
	assert.Equal(t, []string{"POST /metrics/job/tideways_decommission"}, paths)
}
