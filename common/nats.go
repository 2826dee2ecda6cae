package common

import (
	"github.com/kelseyhightower/envconfig"
	nats "github.com/nats-io/nats.go"
)

type natsConfig struct {
	NatsName    string `default:"tuleap-settings"`
	NatsURL     string
	NatsSubject string `default:"tuleap.settings"`
}

// NatsConnect handles connecting the a NATS server. It returns a
// NATS connection and the subject to publish on based on the environment variables:
// - NATSNAME: The name of the NATS connection
// - NATSURL: The URL of the NATS server to connect to, no connection is made when empty
// - NATSSUBJECT: The subject settings changes are published on
func NatsConnect() (*nats.Conn, string, error) {
	var c natsConfig
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, "", err
	}
	if c.NatsURL == "" {
		return nil, c.NatsSubject, nil
	}

	opts := []nats.Option{nats.Name(c.NatsName)}

	nc, err := nats.Connect(c.NatsURL, opts...)
	if err != nil {
		return nil, "", err
	}
	return nc, c.NatsSubject, nil
}

// NatsStop handles gracefully shutting down any connections to the NATS server
func NatsStop(nc *nats.Conn) {
	if nc == nil {
		return
	}
	nc.Close()
}
