package tuleap

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
)

// SettingsSubject is the default NATS subject for settings changes
const SettingsSubject = "tuleap.settings"

// Notifier is told about settings that have been applied and persisted.
type Notifier interface {
	SettingsChanged(settings Settings)
}

// Publisher is the part of a NATS connection the notifier needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// SettingsChangedEvent is the message sent to agents when new settings have been applied.
type SettingsChangedEvent struct {
	ID         string `json:"id"`
	APIBaseURL string `json:"apiBaseUrl"`
	GitBaseURL string `json:"gitBaseUrl"`
}

// NatsNotifier publishes a SettingsChangedEvent for every change. Failures are only logged
// since the settings are already saved at that point.
type NatsNotifier struct {
	conn    Publisher
	subject string
}

func NewNatsNotifier(conn Publisher, subject string) *NatsNotifier {
	if subject == "" {
		subject = SettingsSubject
	}
	return &NatsNotifier{conn: conn, subject: subject}
}

func (n *NatsNotifier) SettingsChanged(settings Settings) {
	evt := SettingsChangedEvent{
		ID:         uuid.NewV4().String(),
		APIBaseURL: settings.APIBaseURL,
		GitBaseURL: settings.GitBaseURL,
	}
	data, err := json.Marshal(evt)
	if err != nil {
		log.Error().Msgf("Error while marshalling settings event to JSON: %s", err.Error())
		return
	}

	log.Debug().Msgf("Sending settings event %s to NATS topic: %s", evt.ID, n.subject)
	if err := n.conn.Publish(n.subject, data); err != nil {
		log.Error().Msgf("Error while publishing message to NATS: %s", err.Error())
	}
}
