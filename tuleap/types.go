package tuleap

const (
	// OrangeForgeURL is the root of the default Tuleap server
	OrangeForgeURL = "https://www.forge.orange-labs.fr"
	// OrangeForgeAPIURL is the default REST API base URL
	OrangeForgeAPIURL = OrangeForgeURL + "/api"
	// OrangeForgeGitHTTPSURL is the default Git over HTTPS base URL. It has to match the git
	// plugin configuration of the server (/etc/tuleap/plugins/git/etc/config.inc).
	OrangeForgeGitHTTPSURL = OrangeForgeURL + "/plugins/git/"

	// DisplayName is the title of the settings section
	DisplayName = "OrangeForge"
)

// Settings represents how the app connects to a Tuleap server. The APIBaseURL is used for the
// REST calls and the GitBaseURL for cloning repositories over HTTPS.
type Settings struct {
	APIBaseURL string `json:"apiBaseUrl" mapstructure:"apiBaseUrl"`
	GitBaseURL string `json:"gitBaseUrl" mapstructure:"gitBaseUrl"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		APIBaseURL: OrangeForgeAPIURL,
		GitBaseURL: OrangeForgeGitHTTPSURL,
	}
}

// Kind is the severity of a FormValidation
type Kind string

const (
	KindOK      Kind = "ok"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// FormValidation is the outcome of a validation shown next to a form field.
type FormValidation struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message,omitempty"`
}

// OK creates a successful outcome.
func OK(msg string) FormValidation {
	return FormValidation{Kind: KindOK, Message: msg}
}

// Warning creates an outcome which accepts the value but flags it.
func Warning(msg string) FormValidation {
	return FormValidation{Kind: KindWarning, Message: msg}
}

// Error creates a failed outcome.
func Error(msg string) FormValidation {
	return FormValidation{Kind: KindError, Message: msg}
}

// IsError reports whether the outcome rejects the value.
func (f FormValidation) IsError() bool {
	return f.Kind == KindError
}
