package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"fip_qc/internal/config"
	"fip_qc/internal/logger"
	"fip_qc/internal/repository"
	"fip_qc/internal/repository/db"
	"fip_qc/internal/service"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "fipqc",
		Short:         "Fiber photometry acquisition mapping and QC",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default configs/config.yml)")

	rootCmd.AddCommand(newAcquisitionCommand(ctx))
	rootCmd.AddCommand(newQCCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newSimulateCommand(ctx))

	return rootCmd
}

// commandContext lazily loads configuration and the logger shared by every subcommand.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	log        *logger.Logger
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.log = logger.Configure(cfg.Log.Level, cfg.Log.Encoding)
	})
	return c.config, c.configErr
}

// services builds the service layer. With store set the repositories are backed by
// the configured SQLite database and the returned close func releases it.
func (c *commandContext) services(store bool) (*service.Service, func() error, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	deps := service.Deps{Config: cfg, Log: c.log}
	if !store {
		return service.NewService(&repository.Repository{}, deps), func() error { return nil }, nil
	}
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return nil, nil, err
	}
	return service.NewService(repository.NewRepository(conn), deps), conn.Close, nil
}
