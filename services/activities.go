package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/internal/utils"
)

// User-facing messages for activity loading failures.
const (
	ActivitiesUnreachableMsg = "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	ActivitiesUnavailableMsg = "Le service des activités est momentanément indisponible. Réessayez plus tard."
	ActivitiesLoadFailedMsg  = "Impossible de charger les activités."
)

// Activity is a news/activity item shown on the marketing pages.
type Activity struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	CreatedAt   string
}

type Activities struct {
	client *api.Client
}

func NewActivities(client *api.Client) (*Activities, error) {
	if client == nil {
		return nil, errors.New("[NewActivities] api client is required")
	}
	return &Activities{client: client}, nil
}

// List fetches all activities.
func (s *Activities) List(ctx context.Context) ([]Activity, error) {
	payload, err := api.Get[[]map[string]any](ctx, s.client, "/api/activities", nil)
	if err != nil {
		return nil, translate(err, ActivitiesUnreachableMsg, ActivitiesUnavailableMsg, ActivitiesLoadFailedMsg)
	}

	out := make([]Activity, 0, len(payload))
	for _, item := range payload {
		out = append(out, Activity{
			ID:          utils.String(item["id"]),
			Title:       utils.String(item["title"]),
			Description: utils.String(item["description"]),
			ImageURL:    utils.String(item["imageUrl"]),
			CreatedAt:   utils.String(item["createdAt"]),
		})
	}
	return out, nil
}

// Get fetches one activity by id.
func (s *Activities) Get(ctx context.Context, id string) (*Activity, error) {
	payload, err := api.Get[map[string]any](ctx, s.client, "/api/activities/"+id, nil)
	if err != nil {
		return nil, translate(err, ActivitiesUnreachableMsg, ActivitiesUnavailableMsg, ActivitiesLoadFailedMsg)
	}
	return &Activity{
		ID:          utils.String(payload["id"]),
		Title:       utils.String(payload["title"]),
		Description: utils.String(payload["description"]),
		ImageURL:    utils.String(payload["imageUrl"]),
		CreatedAt:   utils.String(payload["createdAt"]),
	}, nil
}
