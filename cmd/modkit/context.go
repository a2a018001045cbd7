package main

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/modkit/internal/config"
	"github.com/cory-johannsen/modkit/internal/observability"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	once   sync.Once
	config config.Config
	logger *zap.Logger
	err    error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

// ensure loads configuration and builds the logger once per process.
func (c *commandContext) ensure() error {
	c.once.Do(func() {
		var (
			cfg config.Config
			err error
		)
		if path := strings.TrimSpace(*c.configFlag); path != "" {
			cfg, err = config.Load(path)
		} else {
			cfg, err = config.Default()
		}
		if err != nil {
			c.err = err
			return
		}
		if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
			cfg.Logging.Level = level
		}
		logger, err := observability.NewLogger(cfg.Logging)
		if err != nil {
			c.err = err
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.err
}

func (c *commandContext) cfg() config.Config { return c.config }

func (c *commandContext) log() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}
