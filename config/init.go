package config

import (
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Tureright/performance-test-k6/model"
)

type ThresholdConfig struct {
	PassFailRate float64 `mapstructure:"pass_fail_rate"`
	PassP95Ms    float64 `mapstructure:"pass_p95_ms"`
	WarnFailRate float64 `mapstructure:"warn_fail_rate"`
	WarnP95Ms    float64 `mapstructure:"warn_p95_ms"`
}

type HttpConfig struct {
	Proxy string `mapstructure:"proxy"`
}

type ObjectStorage struct {
	Provider     string `mapstructure:"provider"`
	Url          string `mapstructure:"url"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Bucket       string `mapstructure:"bucket"`
	RequireProxy bool   `mapstructure:"require_proxy"`
}

type LogFormat struct {
	Json     bool   `mapstructure:"json"`
	JsonPath string `mapstructure:"path"`
}

type MetricsConfig struct {
	PushgatewayUrl string `mapstructure:"pushgateway_url"`
}

type DashboardConfig struct {
	ResultsDir    string           `mapstructure:"results_dir"`
	Output        string           `mapstructure:"output"`
	Categories    []string         `mapstructure:"categories"`
	Strict        bool             `mapstructure:"strict"`
	Listen        string           `mapstructure:"listen"`
	LogLevel      string           `mapstructure:"log_level"`
	Thresholds    *ThresholdConfig `mapstructure:"thresholds"`
	HttpConfig    *HttpConfig      `mapstructure:"http_config"`
	ObjectStorage *ObjectStorage   `mapstructure:"object_storage"`
	LogFormat     *LogFormat       `mapstructure:"log_format"`
	Metrics       *MetricsConfig   `mapstructure:"metrics"`

	// below are configs generated from above values
	HTTPClient      *http.Client `mapstructure:"-"`
	HTTPProxyClient *http.Client `mapstructure:"-"`
}

// SetDefaults registers the values used when neither the config file, the
// environment nor a flag sets a key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("results_dir", "results")
	v.SetDefault("output", "index.html")
	v.SetDefault("categories", []string{"smoke", "load", "stress", "spike", "soak"})
	v.SetDefault("strict", false)
	v.SetDefault("listen", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("thresholds.pass_fail_rate", 0.05)
	v.SetDefault("thresholds.pass_p95_ms", 2000)
	v.SetDefault("thresholds.warn_fail_rate", 0.10)
	v.SetDefault("thresholds.warn_p95_ms", 5000)
	v.SetDefault("object_storage.provider", "local")
	v.SetDefault("log_format.json", false)
	v.SetDefault("log_format.path", "")
	v.SetDefault("http_config.proxy", "")
	v.SetDefault("metrics.pushgateway_url", "")
}

func (dc *DashboardConfig) makeHTTPClients() error {
	dc.HTTPClient = &http.Client{}
	if dc.HttpConfig == nil || dc.HttpConfig.Proxy == "" {
		dc.HTTPProxyClient = dc.HTTPClient
		return nil
	}
	proxyUrl, err := url.Parse(dc.HttpConfig.Proxy)
	if err != nil {
		return errors.Wrap(err, "invalid http proxy")
	}
	rt := &http.Transport{
		Proxy: http.ProxyURL(proxyUrl),
	}
	dc.HTTPProxyClient = &http.Client{Transport: rt}
	return nil
}

// LoadConfig reads the optional config file into v and decodes the merged
// view of file, environment and flags.
func LoadConfig(v *viper.Viper, configFile string) (*DashboardConfig, error) {
	SetDefaults(v)
	v.SetEnvPrefix("K6DASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "cannot read config file %s", configFile)
		}
	}
	dc := new(DashboardConfig)
	if err := v.Unmarshal(dc); err != nil {
		return nil, errors.Wrap(err, "cannot decode config")
	}
	if err := validateCategories(dc.Categories); err != nil {
		return nil, err
	}
	if dc.ObjectStorage == nil {
		dc.ObjectStorage = &ObjectStorage{Provider: "local"}
	}
	if dc.LogFormat == nil {
		dc.LogFormat = &LogFormat{}
	}
	if dc.Metrics == nil {
		dc.Metrics = &MetricsConfig{}
	}
	if err := dc.makeHTTPClients(); err != nil {
		return nil, err
	}
	return dc, nil
}

// validateCategories only lets through the known test types, each once.
func validateCategories(categories []string) error {
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if !model.IsKnownCategory(c) {
			return errors.Errorf("unknown category %q, valid categories are %v", c, model.Categories)
		}
		if seen[c] {
			return errors.Errorf("category %q is listed more than once", c)
		}
		seen[c] = true
	}
	return nil
}

func applyJsonLogging(lf *LogFormat) error {
	log.SetFormatter(&log.JSONFormatter{})
	if lf.JsonPath == "" {
		return nil
	}
	if err := os.MkdirAll(lf.JsonPath, os.ModePerm); err != nil {
		return err
	}
	file, err := os.OpenFile(path.Join(lf.JsonPath, "k6dash.json"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrap(err, "failed to log to file")
	}
	log.SetOutput(file)
	return nil
}

func SetupLogging(dc *DashboardConfig) error {
	log.SetOutput(os.Stderr)
	log.SetReportCaller(true)
	level, err := log.ParseLevel(dc.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if dc.LogFormat != nil && dc.LogFormat.Json {
		return applyJsonLogging(dc.LogFormat)
	}
	return nil
}
