package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
)

const (
	ContactUnreachableMsg = "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	ContactUnavailableMsg = "L'envoi du message est momentanément indisponible. Réessayez plus tard."
	ContactFailedMsg      = "L'envoi du message a échoué."
)

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type Contact struct {
	client *api.Client
}

func NewContact(client *api.Client) (*Contact, error) {
	if client == nil {
		return nil, errors.New("[NewContact] api client is required")
	}
	return &Contact{client: client}, nil
}

// Send forwards a contact form message to the backend.
func (s *Contact) Send(ctx context.Context, msg ContactMessage) error {
	if _, err := api.Post[map[string]any](ctx, s.client, "/api/contact", msg, nil); err != nil {
		return translate(err, ContactUnreachableMsg, ContactUnavailableMsg, ContactFailedMsg)
	}
	return nil
}
