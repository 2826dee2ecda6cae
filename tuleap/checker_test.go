package tuleap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommand struct {
	valid      bool
	err        error
	apiBaseURL string
	calls      int
}

func (f *fakeCommand) Run(ctx context.Context, client *http.Client, apiBaseURL string) (bool, error) {
	f.calls++
	f.apiBaseURL = apiBaseURL
	return f.valid, f.err
}

func TestVerifyURLsOK(t *testing.T) {
	cmd := &fakeCommand{valid: true}
	ans := NewChecker(nil).WithCommand(cmd).VerifyURLs(context.Background(), OrangeForgeAPIURL, OrangeForgeGitHTTPSURL)
	assert.Equal(t, OK("Connection established with these Urls"), ans)
	assert.Equal(t, OrangeForgeAPIURL, cmd.apiBaseURL)
}

func TestVerifyURLsRejected(t *testing.T) {
	cmd := &fakeCommand{valid: false}
	ans := NewChecker(nil).WithCommand(cmd).VerifyURLs(context.Background(), OrangeForgeAPIURL, OrangeForgeGitHTTPSURL)
	assert.Equal(t, Error("Failed to validate the account"), ans)
	assert.Equal(t, 1, cmd.calls)
}

func TestVerifyURLsIOError(t *testing.T) {
	cmd := &fakeCommand{err: errors.New("connection refused")}
	ans := NewChecker(nil).WithCommand(cmd).VerifyURLs(context.Background(), OrangeForgeAPIURL, OrangeForgeGitHTTPSURL)
	assert.Equal(t, KindError, ans.Kind)
	assert.Contains(t, ans.Message, "Failed to validate the account")
	assert.Contains(t, ans.Message, "connection refused")
	assert.Equal(t, 1, cmd.calls, "no retry")
}

// The git base URL is passed through untouched and never checked.
func TestVerifyURLsIgnoresGitBaseURL(t *testing.T) {
	cmd := &fakeCommand{valid: true}
	ans := NewChecker(nil).WithCommand(cmd).VerifyURLs(context.Background(), OrangeForgeAPIURL, "ht!tp://bad")
	assert.Equal(t, KindOK, ans.Kind)
	assert.Equal(t, OrangeForgeAPIURL, cmd.apiBaseURL)
}

func TestConfigureWithoutCommand(t *testing.T) {
	_, err := NewCommandConfigurer[bool]("https://example.com/api").Configure()
	assert.Error(t, err)
}

func newTuleapServer(t *testing.T, status int, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIsServerURLValid(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"project list", http.StatusOK, `[{"id":101,"label":"Demo"}]`, true},
		{"empty list", http.StatusOK, `[]`, true},
		{"not a list", http.StatusOK, `{"error":"nope"}`, false},
		{"html page", http.StatusOK, `<html></html>`, false},
		{"not found", http.StatusNotFound, `[]`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTuleapServer(t, tc.status, tc.body)
			cmd, err := NewCommandConfigurer[bool](srv.URL + "/api/").
				WithCommand(IsServerURLValid{}).
				WithHTTPClient(srv.Client()).
				Configure()
			require.NoError(t, err)

			valid, err := cmd.Call(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.want, valid)
		})
	}
}

func TestIsServerURLValidOversizedAnswer(t *testing.T) {
	// a valid array whose closing bracket lies beyond the read limit
	body := "[" + strings.Repeat(`"x",`, maxProbeBodySize/4) + `"x"]`
	srv := newTuleapServer(t, http.StatusOK, body)

	valid, err := IsServerURLValid{}.Run(context.Background(), srv.Client(), srv.URL+"/api")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyURLsAgainstServer(t *testing.T) {
	srv := newTuleapServer(t, http.StatusOK, `[]`)
	ans := NewChecker(srv.Client()).VerifyURLs(context.Background(), srv.URL+"/api", "")
	assert.Equal(t, KindOK, ans.Kind)
}

func TestVerifyURLsUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ans := NewChecker(nil).VerifyURLs(context.Background(), url+"/api", "")
	assert.Equal(t, KindError, ans.Kind)
	assert.Contains(t, ans.Message, "Failed to validate the account: ")
}

func TestVerifyURLsMalformedURLIsError(t *testing.T) {
	ans := NewChecker(nil).VerifyURLs(context.Background(), "ht!tp://bad", "")
	assert.Equal(t, KindError, ans.Kind)
	assert.Contains(t, ans.Message, "Failed to validate the account")
}
