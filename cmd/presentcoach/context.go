package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"presentcoach/internal/config"
	"presentcoach/internal/logging"
	"presentcoach/internal/store"
)

const defaultEnvFile = ".env"

type commandContext struct {
	configFlag  *string
	envFileFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, envFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		envFileFlag: envFileFlag,
	}
}

// loadEnv reads KEY=value pairs without overriding variables already set.
// An explicit --env-file must exist; the default .env is optional.
func (c *commandContext) loadEnv() error {
	path := ""
	if c.envFileFlag != nil {
		path = strings.TrimSpace(*c.envFileFlag)
	}
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	if c.config == nil && c.configErr == nil {
		return nil, errors.New("configuration unavailable")
	}
	return c.config, c.configErr
}

func (c *commandContext) logger(verbose bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !verbose {
		return logging.NewNop(), nil
	}
	return logging.NewFromConfig(cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
