package tuleap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	// DefaultTimeout bounds a single request against the Tuleap REST API
	DefaultTimeout = 10 * time.Second

	// maxProbeBodySize caps how much of an answer is read, a single project
	// is far below it
	maxProbeBodySize = 1 << 20
)

// Command is a request against a Tuleap server which is ready to be executed.
type Command[T any] interface {
	Call(ctx context.Context) (T, error)
}

// RawCommand is a request that still needs to know which server to talk to and how.
type RawCommand[T any] interface {
	Run(ctx context.Context, client *http.Client, apiBaseURL string) (T, error)
}

// CommandConfigurer binds a RawCommand to an API base URL and an HTTP client.
type CommandConfigurer[T any] struct {
	apiBaseURL string
	raw        RawCommand[T]
	client     *http.Client
}

// NewCommandConfigurer starts the configuration of a command for the server at apiBaseURL.
func NewCommandConfigurer[T any](apiBaseURL string) *CommandConfigurer[T] {
	return &CommandConfigurer[T]{apiBaseURL: apiBaseURL}
}

func (c *CommandConfigurer[T]) WithCommand(raw RawCommand[T]) *CommandConfigurer[T] {
	c.raw = raw
	return c
}

func (c *CommandConfigurer[T]) WithHTTPClient(client *http.Client) *CommandConfigurer[T] {
	c.client = client
	return c
}

// Configure returns the executable command. A client with DefaultTimeout is used when
// none was given.
func (c *CommandConfigurer[T]) Configure() (Command[T], error) {
	if c.raw == nil {
		return nil, errors.New("no command to configure")
	}
	client := c.client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &configuredCommand[T]{raw: c.raw, client: client, apiBaseURL: c.apiBaseURL}, nil
}

type configuredCommand[T any] struct {
	raw        RawCommand[T]
	client     *http.Client
	apiBaseURL string
}

func (c *configuredCommand[T]) Call(ctx context.Context) (T, error) {
	return c.raw.Run(ctx, c.client, c.apiBaseURL)
}

// IsServerURLValid asks the server to list a single project. A Tuleap REST API answers with
// a JSON array, anything else means the URL does not point to a Tuleap server.
type IsServerURLValid struct{}

func (IsServerURLValid) Run(ctx context.Context, client *http.Client, apiBaseURL string) (bool, error) {
	url := strings.TrimSuffix(apiBaseURL, "/") + "/projects?limit=1"

	log.Debug().Msgf("Sending request to: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Add("accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxProbeBodySize))
	if err != nil {
		return false, fmt.Errorf("error while receiving response from Tuleap: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		log.Debug().Msgf("Tuleap answered %d:\n%s", res.StatusCode, string(body))
		return false, nil
	}
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsArray() {
		log.Debug().Msgf("Received data that is not a project list:\n%s", string(body))
		return false, nil
	}
	return true, nil
}
