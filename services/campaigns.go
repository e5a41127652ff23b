package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/internal/utils"
)

const (
	CampaignsUnreachableMsg = "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	CampaignsUnavailableMsg = "Le service des campagnes est momentanément indisponible. Réessayez plus tard."
	CampaignsLoadFailedMsg  = "Impossible de charger les campagnes."
)

// Campaign is a donation campaign as browsed on the campaign pages.
type Campaign struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	Goal        float64
	Raised      float64
	Currency    string
	Active      bool
}

type Campaigns struct {
	client *api.Client
}

func NewCampaigns(client *api.Client) (*Campaigns, error) {
	if client == nil {
		return nil, errors.New("[NewCampaigns] api client is required")
	}
	return &Campaigns{client: client}, nil
}

func (s *Campaigns) List(ctx context.Context) ([]Campaign, error) {
	payload, err := api.Get[[]map[string]any](ctx, s.client, "/api/campaigns", nil)
	if err != nil {
		return nil, translate(err, CampaignsUnreachableMsg, CampaignsUnavailableMsg, CampaignsLoadFailedMsg)
	}

	out := make([]Campaign, 0, len(payload))
	for _, item := range payload {
		out = append(out, campaignFromPayload(item))
	}
	return out, nil
}

func (s *Campaigns) Get(ctx context.Context, id string) (*Campaign, error) {
	payload, err := api.Get[map[string]any](ctx, s.client, "/api/campaigns/"+id, nil)
	if err != nil {
		return nil, translate(err, CampaignsUnreachableMsg, CampaignsUnavailableMsg, CampaignsLoadFailedMsg)
	}
	c := campaignFromPayload(payload)
	return &c, nil
}

func campaignFromPayload(item map[string]any) Campaign {
	return Campaign{
		ID:          utils.String(item["id"]),
		Title:       utils.String(item["title"]),
		Description: utils.String(item["description"]),
		ImageURL:    utils.String(item["imageUrl"]),
		Goal:        utils.Number(item["goal"]),
		Raised:      utils.Number(item["raised"]),
		Currency:    utils.StringOr(item["currency"], "EUR"),
		Active:      utils.Bool(item["active"]),
	}
}
