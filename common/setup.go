package common

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config contains the common configuration data for the server.
type Config struct {
	LogLevel     string `default:"info"`
	ListenAddr   string `default:":8080"`
	SettingsFile string `default:"tuleap.yaml"`
	WatchFile    bool   `default:"true"`
}

// HandleSetup takes care of reading the environment and initializing the logger.
// It's done in the common package so that the server and the command line tools
// set up logging the exact same way.
func HandleSetup() Config {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		panic(fmt.Errorf("fatal error reading environment variables: %s", err.Error()))
	}

	if err := SetupLogging(c.LogLevel); err != nil {
		panic(err)
	}
	return c
}

// SetupLogging sets the global log level
func SetupLogging(level string) error {
	loglevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("fatal error reading log level: %s", err)
	}
	zerolog.SetGlobalLevel(loglevel)

	// Enable ConsoleWriter only for runmode debug
	if loglevel == zerolog.DebugLevel {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}
