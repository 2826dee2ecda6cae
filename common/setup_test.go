package common

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	assert.NoError(t, SetupLogging("warn"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	assert.Error(t, SetupLogging("loud"))
}

func TestHandleSetupDefaults(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Setenv("LOGLEVEL", "error")
	t.Setenv("SETTINGSFILE", "/tmp/tuleap-test.yaml")

	c := HandleSetup()
	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, "/tmp/tuleap-test.yaml", c.SettingsFile)
	assert.True(t, c.WatchFile)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestNatsConnectWithoutURL(t *testing.T) {
	t.Setenv("NATSURL", "")
	nc, subject, err := NatsConnect()
	assert.NoError(t, err)
	assert.Nil(t, nc)
	assert.Equal(t, "tuleap.settings", subject)
	NatsStop(nc)
}
