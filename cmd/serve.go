package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"linkgate"
	"linkgate/internal/config"
)

func init() {
	command := &cobra.Command{
		Use:   "serve",
		Short: "serve linkgate server",
		Long:  `serve linkgate server`,
		Run:   linkgate.Service.ServeCommand,
	}

	configs := []config.Config{
		linkgate.Service.ServerConfig,
	}

	cobra.OnInitialize(func() {
		for _, cfg := range configs {
			cfg.Set()
		}
		linkgate.Service.Preflight()
	})

	for _, cfg := range configs {
		if err := cfg.Init(command); err != nil {
			log.Panic().Err(err).Msg("unable to run serve command")
		}
	}

	onConfigLoad = append(onConfigLoad, func() {
		for _, cfg := range configs {
			cfg.Set()
		}
	})

	rootCmd.AddCommand(command)
}
