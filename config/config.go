// Package config loads the pipeline configuration: a yaml file layered over
// built-in defaults, with a few environment overrides on top.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "nukewire.yaml"

// ListingSource configures one article-listing source.
type ListingSource struct {
	URL string `yaml:"url"`
	// RSSURL enables the feed fallback used when the rendered listing
	// yields nothing. Off when empty.
	RSSURL string `yaml:"rss_url"`
}

// BulletinSource configures the bulletin board source.
type BulletinSource struct {
	URL string `yaml:"url"`
}

// Config is the full pipeline configuration.
type Config struct {
	Sources struct {
		EnergyNews ListingSource  `yaml:"energy_news"`
		KNPNews    ListingSource  `yaml:"knpnews"`
		KAIF       BulletinSource `yaml:"kaif"`
	} `yaml:"sources"`

	OutputDir string `yaml:"output_dir"`
	DBPath    string `yaml:"db_path"`

	// SettleSeconds is the post-navigation wait on listing pages;
	// DetailSettleSeconds applies to bulletin detail pages.
	SettleSeconds       int `yaml:"settle_seconds"`
	DetailSettleSeconds int `yaml:"detail_settle_seconds"`

	SlackWebhookURL string `yaml:"slack_webhook_url"`
}

// Default returns the production configuration.
func Default() *Config {
	cfg := &Config{
		OutputDir:           ".",
		DBPath:              "nukewire.db",
		SettleSeconds:       5,
		DetailSettleSeconds: 3,
	}
	cfg.Sources.EnergyNews.URL = "https://www.energy-news.co.kr/news/articleList.html?sc_sub_section_code=S2N4&view_type=sm"
	cfg.Sources.KNPNews.URL = "https://www.knpnews.com/news/articleList.html?sc_section_code=S1N1&view_type=sm"
	cfg.Sources.KAIF.URL = "https://www.kaif.or.kr/ko/ko/?c=250&s=250"
	return cfg
}

// Load reads the config file at path, layered over the defaults. A missing
// file is not an error; the defaults are returned unchanged. Environment
// overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("NUKEWIRE_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("NUKEWIRE_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		c.SlackWebhookURL = v
	}
}

// Settle returns the listing settle delay as a duration.
func (c *Config) Settle() time.Duration {
	return time.Duration(c.SettleSeconds) * time.Second
}

// DetailSettle returns the bulletin detail settle delay as a duration.
func (c *Config) DetailSettle() time.Duration {
	return time.Duration(c.DetailSettleSeconds) * time.Second
}
