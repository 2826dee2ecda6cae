package tuleap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	connectionOKMsg     = "Connection established with these Urls"
	connectionFailedMsg = "Failed to validate the account"
)

// Checker verifies that the configured URLs point to a reachable Tuleap server.
type Checker struct {
	client *http.Client
	raw    RawCommand[bool]
}

// NewChecker creates a checker issuing IsServerURLValid through client. A nil client
// means a default client with DefaultTimeout.
func NewChecker(client *http.Client) *Checker {
	return &Checker{client: client, raw: IsServerURLValid{}}
}

// WithCommand replaces the command sent to the server.
func (c *Checker) WithCommand(raw RawCommand[bool]) *Checker {
	c.raw = raw
	return c
}

// VerifyURLs contacts the server once at apiBaseURL. The gitBaseURL is accepted for the
// form but not checked, only the REST API is probed.
func (c *Checker) VerifyURLs(ctx context.Context, apiBaseURL, gitBaseURL string) FormValidation {
	cmd, err := NewCommandConfigurer[bool](apiBaseURL).
		WithCommand(c.raw).
		WithHTTPClient(c.client).
		Configure()
	if err != nil {
		return Error(fmt.Sprintf("%s: %s", connectionFailedMsg, err.Error()))
	}

	valid, err := cmd.Call(ctx)
	if err != nil {
		log.Error().Msgf("Error while contacting Tuleap at %s: %s", apiBaseURL, err.Error())
		return Error(fmt.Sprintf("%s: %s", connectionFailedMsg, err.Error()))
	}
	if !valid {
		return Error(connectionFailedMsg)
	}
	return OK(connectionOKMsg)
}
