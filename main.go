package linkgate

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"linkgate/internal/api"
	"linkgate/internal/config"
	"linkgate/internal/http"
	"linkgate/internal/registry"
	"linkgate/internal/relay"
	"linkgate/internal/store"
)

var Service *Main

func init() {
	Service = &Main{
		ServerConfig: &config.Server{},
	}
}

type Main struct {
	ServerConfig *config.Server

	logger     zerolog.Logger
	store      store.Store
	registry   *registry.RegistryCtx
	relay      *relay.RelayCtx
	apiManager *api.ApiManagerCtx
	server     *http.ServerCtx
}

func (main *Main) Preflight() {
	main.logger = log.With().Str("service", "main").Logger()
}

func (main *Main) Start() {
	var err error
	main.store, err = store.Open(context.Background(), store.Config{
		Backend:       main.ServerConfig.Store.Backend,
		File:          main.ServerConfig.Store.File,
		RedisAddr:     main.ServerConfig.Store.RedisAddr,
		RedisPassword: main.ServerConfig.Store.RedisPassword,
		RedisDB:       main.ServerConfig.Store.RedisDB,
		PostgresDSN:   main.ServerConfig.Store.PostgresDSN,
	})
	if err != nil {
		main.logger.Panic().Err(err).Msg("unable to open store")
	}

	main.registry = registry.New(main.store, main.ServerConfig.Store.Prefix)
	main.relay = relay.New()
	main.apiManager = api.New(main.ServerConfig, main.registry, main.relay)

	main.server = http.New(main.ServerConfig)
	main.server.Mount(main.apiManager.Mount)
	main.server.Start()
}

func (main *Main) Shutdown() {
	if err := main.server.Shutdown(); err != nil {
		main.logger.Err(err).Msg("server shutdown with an error")
	} else {
		main.logger.Debug().Msg("server shutdown")
	}

	if err := main.store.Close(); err != nil {
		main.logger.Err(err).Msg("store close with an error")
	}
}

func (main *Main) ServeCommand(cmd *cobra.Command, args []string) {
	main.logger.Info().Msg("starting main server")
	main.Start()
	main.logger.Info().Msg("main ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	sig := <-quit

	main.logger.Warn().Msgf("received %s, attempting graceful shutdown", sig)
	main.Shutdown()
	main.logger.Info().Msg("shutdown complete")
}
