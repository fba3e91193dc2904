package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for iconcheck. Paths are relative to the
// repository root unless absolute.
type Config struct {
	SourceDir             string         `mapstructure:"source_dir"`
	DistDir               string         `mapstructure:"dist_dir"`
	IgnoreManifest        string         `mapstructure:"ignore_manifest"`
	Catalogs              CatalogConfig  `mapstructure:"catalogs"`
	BuildScript           string         `mapstructure:"build_script"`
	Readme                string         `mapstructure:"readme"`
	// AllowedDirs are gitignore-style patterns the packaging step may keep
	AllowedDirs           []string       `mapstructure:"allowed_dirs"`
	MinImageSize          int            `mapstructure:"min_image_size"`
	QualityCategories     []string       `mapstructure:"quality_categories"`
	AttributionCategories []string       `mapstructure:"attribution_categories"`
	DeviceDetector        DeviceDetector `mapstructure:"device_detector"`
	CI                    CIConfig       `mapstructure:"ci"`
}

// CatalogConfig locates the search engine and social site catalogs
type CatalogConfig struct {
	SearchEngines string `mapstructure:"search_engines"`
	Socials       string `mapstructure:"socials"`
}

// DeviceDetector configures the external device classifier
type DeviceDetector struct {
	// Command is the argv of the classifier; empty disables the check
	Command []string `mapstructure:"command"`
}

// CIConfig names the CI environment variables and carries their values
type CIConfig struct {
	FoldEnv        string `mapstructure:"fold_env"`
	PullRequestEnv string `mapstructure:"pull_request_env"`

	Fold        string `mapstructure:"fold"`
	PullRequest string `mapstructure:"pull_request"`
}

// FoldOutput reports whether CI fold markers should bracket verbose sections
func (c CIConfig) FoldOutput() bool {
	return strings.TrimSpace(c.Fold) != ""
}

// IsPullRequest reports whether the run is a pull-request CI build.
// Travis sets the variable to "false" on push builds.
func (c CIConfig) IsPullRequest() bool {
	v := strings.TrimSpace(c.PullRequest)
	return v != "" && v != "false"
}

var defaultConfig = Config{
	SourceDir:      "src",
	DistDir:        "dist",
	IgnoreManifest: "tests-ignore.yml",
	Catalogs: CatalogConfig{
		SearchEngines: "vendor/matomo/searchengine-and-social-list/SearchEngines.yml",
		Socials:       "vendor/matomo/searchengine-and-social-list/Socials.yml",
	},
	BuildScript:           "build-package.sh",
	Readme:                "README.md",
	AllowedDirs:           []string{"/dist/", "/vendor/", "node_modules/", ".git/", ".idea/", "__pycache__/", ".cache/"},
	MinImageSize:          48,
	QualityCategories:     []string{"brand", "browsers", "devices", "flags", "os", "plugins", "SEO"},
	AttributionCategories: []string{"brand", "browsers", "os", "plugins", "SEO"},
	DeviceDetector: DeviceDetector{
		Command: []string{"php", "devicedetector.php"},
	},
	CI: CIConfig{
		FoldEnv:        "TRAVIS",
		PullRequestEnv: "TRAVIS_PULL_REQUEST",
	},
}

// Default returns a copy of the built-in configuration
func Default() Config {
	c := defaultConfig
	c.AllowedDirs = append([]string(nil), defaultConfig.AllowedDirs...)
	c.QualityCategories = append([]string(nil), defaultConfig.QualityCategories...)
	c.AttributionCategories = append([]string(nil), defaultConfig.AttributionCategories...)
	c.DeviceDetector.Command = append([]string(nil), defaultConfig.DeviceDetector.Command...)
	return c
}

// LoadConfig loads configuration for the repository at root. An explicit
// configFile wins over the search path; a missing search-path file is fine.
func LoadConfig(root, configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("source_dir", defaultConfig.SourceDir)
	v.SetDefault("dist_dir", defaultConfig.DistDir)
	v.SetDefault("ignore_manifest", defaultConfig.IgnoreManifest)
	v.SetDefault("catalogs.search_engines", defaultConfig.Catalogs.SearchEngines)
	v.SetDefault("catalogs.socials", defaultConfig.Catalogs.Socials)
	v.SetDefault("build_script", defaultConfig.BuildScript)
	v.SetDefault("readme", defaultConfig.Readme)
	v.SetDefault("allowed_dirs", defaultConfig.AllowedDirs)
	v.SetDefault("min_image_size", defaultConfig.MinImageSize)
	v.SetDefault("quality_categories", defaultConfig.QualityCategories)
	v.SetDefault("attribution_categories", defaultConfig.AttributionCategories)
	v.SetDefault("device_detector.command", defaultConfig.DeviceDetector.Command)
	v.SetDefault("ci.fold_env", defaultConfig.CI.FoldEnv)
	v.SetDefault("ci.pull_request_env", defaultConfig.CI.PullRequestEnv)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigType("yaml")
		found := false
		for _, name := range []string{".iconcheck.yaml", ".iconcheck.yml", "iconcheck.yaml", "iconcheck.yml"} {
			candidate := filepath.Join(root, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				v.SetConfigFile(candidate)
				found = true
				break
			}
		}
		if found {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	// Environment variables
	v.SetEnvPrefix("ICONCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// CI variables are bound under the names the config points at
	if err := v.BindEnv("ci.fold", v.GetString("ci.fold_env")); err != nil {
		return nil, fmt.Errorf("error binding %s: %w", v.GetString("ci.fold_env"), err)
	}
	if err := v.BindEnv("ci.pull_request", v.GetString("ci.pull_request_env")); err != nil {
		return nil, fmt.Errorf("error binding %s: %w", v.GetString("ci.pull_request_env"), err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}
	if config.MinImageSize <= 0 {
		return nil, fmt.Errorf("min_image_size must be positive, got %d", config.MinImageSize)
	}

	return &config, nil
}

// Resolve joins p onto root unless p is already absolute
func Resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
