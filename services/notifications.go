package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/internal/utils"
)

const (
	NotificationsUnreachableMsg = "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	NotificationsUnavailableMsg = "Le service des notifications est momentanément indisponible. Réessayez plus tard."
	NotificationsLoadFailedMsg  = "Impossible de charger les notifications."
)

// Notification is one entry of the authenticated user's inbox.
type Notification struct {
	ID        string
	Title     string
	Body      string
	Read      bool
	CreatedAt string
}

type Notifications struct {
	client *api.Client
}

func NewNotifications(client *api.Client) (*Notifications, error) {
	if client == nil {
		return nil, errors.New("[NewNotifications] api client is required")
	}
	return &Notifications{client: client}, nil
}

// List fetches the user's notifications. Requires a bearer token.
func (s *Notifications) List(ctx context.Context, token string) ([]Notification, error) {
	payload, err := api.Get[[]map[string]any](ctx, s.client, "/api/notifications", &api.Options{Token: token})
	if err != nil {
		return nil, translate(err, NotificationsUnreachableMsg, NotificationsUnavailableMsg, NotificationsLoadFailedMsg)
	}

	out := make([]Notification, 0, len(payload))
	for _, item := range payload {
		out = append(out, Notification{
			ID:        utils.String(item["id"]),
			Title:     utils.String(item["title"]),
			Body:      utils.String(item["body"]),
			Read:      utils.Bool(item["read"]),
			CreatedAt: utils.String(item["createdAt"]),
		})
	}
	return out, nil
}

// MarkRead marks one notification as read.
func (s *Notifications) MarkRead(ctx context.Context, token, id string) error {
	body := map[string]bool{"read": true}
	if _, err := api.Patch[map[string]any](ctx, s.client, "/api/notifications/"+id, body, &api.Options{Token: token}); err != nil {
		return translate(err, NotificationsUnreachableMsg, NotificationsUnavailableMsg, NotificationsLoadFailedMsg)
	}
	return nil
}
