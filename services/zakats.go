package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/internal/utils"
)

const (
	ZakatsUnreachableMsg = "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	ZakatsUnavailableMsg = "Le service des zakats est momentanément indisponible. Réessayez plus tard."
	ZakatsLoadFailedMsg  = "Impossible de charger vos zakats."
)

// Zakat is one zakat payment recorded for the authenticated user. The
// amounts are computed by the backend; this client only displays them.
type Zakat struct {
	ID        string
	Amount    float64
	Currency  string
	Status    string
	CreatedAt string
}

type Zakats struct {
	client *api.Client
}

func NewZakats(client *api.Client) (*Zakats, error) {
	if client == nil {
		return nil, errors.New("[NewZakats] api client is required")
	}
	return &Zakats{client: client}, nil
}

// List fetches the user's zakat history. Requires a bearer token.
func (s *Zakats) List(ctx context.Context, token string) ([]Zakat, error) {
	payload, err := api.Get[[]map[string]any](ctx, s.client, "/api/zakats", &api.Options{Token: token})
	if err != nil {
		return nil, translate(err, ZakatsUnreachableMsg, ZakatsUnavailableMsg, ZakatsLoadFailedMsg)
	}

	out := make([]Zakat, 0, len(payload))
	for _, item := range payload {
		out = append(out, Zakat{
			ID:        utils.String(item["id"]),
			Amount:    utils.Number(item["amount"]),
			Currency:  utils.StringOr(item["currency"], "EUR"),
			Status:    utils.String(item["status"]),
			CreatedAt: utils.String(item["createdAt"]),
		})
	}
	return out, nil
}
