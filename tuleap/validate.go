package tuleap

import (
	"fmt"
	"net/url"
)

const (
	malformedURLMsg  = "Malformed OrangeForge url (%s)"
	nonDefaultURLMsg = "OrangeForge Urls are required and should be valid"
)

// ValidateURL checks that candidate is a well formed absolute URL. Only the exact canonical
// default passes silently, any other well formed URL gets a warning.
func ValidateURL(candidate, canonicalDefault string) FormValidation {
	if err := parseURL(candidate); err != nil {
		return Error(fmt.Sprintf(malformedURLMsg, err.Error()))
	}
	if candidate == canonicalDefault {
		return OK("")
	}
	return Warning(nonDefaultURLMsg)
}

// CheckAPIBaseURL validates an API base URL against OrangeForgeAPIURL
func CheckAPIBaseURL(apiBaseURL string) FormValidation {
	return ValidateURL(apiBaseURL, OrangeForgeAPIURL)
}

// CheckGitBaseURL validates a Git base URL against OrangeForgeGitHTTPSURL
func CheckGitBaseURL(gitBaseURL string) FormValidation {
	return ValidateURL(gitBaseURL, OrangeForgeGitHTTPSURL)
}

func parseURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" {
		return fmt.Errorf("no protocol: %s", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unknown protocol: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host: %s", raw)
	}
	return nil
}
