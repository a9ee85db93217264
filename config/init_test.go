package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	dc, err := LoadConfig(viper.New(), "")
	require.Nil(t, err)
	assert.Equal(t, "results", dc.ResultsDir)
	assert.Equal(t, "index.html", dc.Output)
	assert.Equal(t, []string{"smoke", "load", "stress", "spike", "soak"}, dc.Categories)
	assert.False(t, dc.Strict)
	assert.Equal(t, "local", dc.ObjectStorage.Provider)
	require.NotNil(t, dc.Thresholds)
	assert.Equal(t, ThresholdConfig{PassFailRate: 0.05, PassP95Ms: 2000, WarnFailRate: 0.10, WarnP95Ms: 5000}, *dc.Thresholds)
	assert.Equal(t, dc.HTTPClient, dc.HTTPProxyClient)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k6dash.yaml")
	content := `
results_dir: /data/results
strict: true
categories: [smoke, load]
thresholds:
  pass_p95_ms: 1500
object_storage:
  provider: nexus
  url: http://nexus.local/repository/k6
http_config:
  proxy: http://proxy.local:3128
`
	require.Nil(t, os.WriteFile(path, []byte(content), 0644))

	dc, err := LoadConfig(viper.New(), path)
	require.Nil(t, err)
	assert.Equal(t, "/data/results", dc.ResultsDir)
	assert.True(t, dc.Strict)
	assert.Equal(t, []string{"smoke", "load"}, dc.Categories)
	assert.Equal(t, float64(1500), dc.Thresholds.PassP95Ms)
	// keys missing from the file keep their defaults
	assert.Equal(t, float64(5000), dc.Thresholds.WarnP95Ms)
	assert.Equal(t, "nexus", dc.ObjectStorage.Provider)
	assert.NotEqual(t, dc.HTTPClient, dc.HTTPProxyClient)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NotNil(t, err)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("K6DASH_RESULTS_DIR", "/env/results")
	t.Setenv("K6DASH_THRESHOLDS_WARN_FAIL_RATE", "0.2")
	dc, err := LoadConfig(viper.New(), "")
	require.Nil(t, err)
	assert.Equal(t, "/env/results", dc.ResultsDir)
	assert.Equal(t, 0.2, dc.Thresholds.WarnFailRate)
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	dc := &DashboardConfig{LogLevel: "debug", LogFormat: &LogFormat{}}
	require.Nil(t, SetupLogging(dc))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	dc.LogLevel = "loud"
	assert.NotNil(t, SetupLogging(dc))

	dir := t.TempDir()
	dc = &DashboardConfig{LogLevel: "info", LogFormat: &LogFormat{Json: true, JsonPath: dir}}
	require.Nil(t, SetupLogging(dc))
	log.SetOutput(os.Stderr)
	_, err := os.Stat(filepath.Join(dir, "k6dash.json"))
	assert.Nil(t, err)
}

func TestLoadConfigRejectsBadCategories(t *testing.T) {
	cases := map[string]string{
		"duplicate": "categories: [smoke, load, smoke]\n",
		"unknown":   "categories: [smoke, chaos]\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "k6dash.yaml")
			require.Nil(t, os.WriteFile(path, []byte(content), 0644))
			_, err := LoadConfig(viper.New(), path)
			require.NotNil(t, err)
			assert.Contains(t, err.Error(), "category")
		})
	}
}
