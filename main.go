package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/retgits/tuleap-settings/common"
	"github.com/retgits/tuleap-settings/tuleap"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Handle common startup processes
	conf := common.HandleSetup()
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := tuleap.NewStore(conf.SettingsFile)
	if err != nil {
		log.Fatal().Msgf("fatal error while loading settings: %s", err.Error())
	}
	if conf.WatchFile {
		store.Watch()
	}

	nc, subject, err := common.NatsConnect()
	if err != nil {
		log.Fatal().Msgf("fatal error while connecting to NATS: %s", err.Error())
	}
	if nc != nil {
		store.WithNotifier(tuleap.NewNatsNotifier(nc, subject))
	}

	// Create a new server
	srv := NewServer(store, tuleap.NewChecker(nil), conf.ListenAddr)

	// Create a channel to wait for quit signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Create a go routine that will wait for a signal interrupt
	// to gracefully shutdown the server
	go func() {
		<-quit
		log.Info().Msg("Received os.Interrupt signal")
		srv.Stop()
	}()

	// Start the server
	if err := srv.Start(); err != nil {
		log.Fatal().Msgf("fatal error while running server: %s", err.Error())
	}
	common.NatsStop(nc)
}
