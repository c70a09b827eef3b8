package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ironsworn-content/internal/config"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	for _, key := range []string{
		"IRONSWORN_DATAFORGED_BASE_URL",
		"IRONSWORN_OUTPUT_DIR",
		"IRONSWORN_HTTP_TIMEOUT",
		"IRONSWORN_COMPENDIUM",
		"IRONSWORN_REDIS_ADDR",
		"IRONSWORN_WITH_SETTING_TRUTHS",
		"IRONSWORN_VERBOSE",
	} {
		s.T().Setenv(key, "")
	}
}

func (s *ConfigTestSuite) TestLoadDefaults() {
	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal(config.DefaultBaseURL, cfg.BaseURL)
	s.Equal(config.DefaultOutputDir, cfg.OutputDir)
	s.Equal(time.Duration(0), cfg.HTTPTimeout)
	s.Equal(config.DefaultCompendium, cfg.Compendium)
	s.Empty(cfg.RedisAddr)
	s.False(cfg.IncludeSettingTruths)
}

func (s *ConfigTestSuite) TestLoadOverrides() {
	s.T().Setenv("IRONSWORN_DATAFORGED_BASE_URL", "http://localhost:9000/data/")
	s.T().Setenv("IRONSWORN_OUTPUT_DIR", "/tmp/assets")
	s.T().Setenv("IRONSWORN_HTTP_TIMEOUT", "30s")
	s.T().Setenv("IRONSWORN_REDIS_ADDR", "localhost:6379")
	s.T().Setenv("IRONSWORN_WITH_SETTING_TRUTHS", "true")

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal("http://localhost:9000/data/", cfg.BaseURL)
	s.Equal("/tmp/assets", cfg.OutputDir)
	s.Equal(30*time.Second, cfg.HTTPTimeout)
	s.Equal("localhost:6379", cfg.RedisAddr)
	s.True(cfg.IncludeSettingTruths)
}

func (s *ConfigTestSuite) TestLoadErrors() {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unparseable timeout", key: "IRONSWORN_HTTP_TIMEOUT", value: "soon"},
		{name: "negative timeout", key: "IRONSWORN_HTTP_TIMEOUT", value: "-1s"},
		{name: "relative base url", key: "IRONSWORN_DATAFORGED_BASE_URL", value: "dataforged/main"},
		{name: "unparseable bool", key: "IRONSWORN_WITH_SETTING_TRUTHS", value: "maybe"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.T().Setenv(tc.key, tc.value)

			cfg, err := config.Load()
			s.Require().Error(err)
			s.Nil(cfg)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}
