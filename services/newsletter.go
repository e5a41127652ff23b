package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
)

const (
	NewsletterUnreachableMsg = "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	NewsletterUnavailableMsg = "L'inscription à la newsletter est momentanément indisponible. Réessayez plus tard."
	NewsletterFailedMsg      = "L'inscription à la newsletter a échoué."
)

type Newsletter struct {
	client *api.Client
}

func NewNewsletter(client *api.Client) (*Newsletter, error) {
	if client == nil {
		return nil, errors.New("[NewNewsletter] api client is required")
	}
	return &Newsletter{client: client}, nil
}

// Subscribe registers an email address for the newsletter.
func (s *Newsletter) Subscribe(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if _, err := api.Post[map[string]any](ctx, s.client, "/api/newsletter", body, nil); err != nil {
		return translate(err, NewsletterUnreachableMsg, NewsletterUnavailableMsg, NewsletterFailedMsg)
	}
	return nil
}
