package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/internal/utils"
)

const (
	NissabUnreachableMsg = "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	NissabUnavailableMsg = "Le service du nissab est momentanément indisponible. Réessayez plus tard."
	NissabLoadFailedMsg  = "Impossible de charger les seuils du nissab."
)

// NissabThreshold is the minimum wealth above which zakat is due,
// computed by the backend from current metal prices.
type NissabThreshold struct {
	Metal     string
	Amount    float64
	Currency  string
	UpdatedAt string
}

type Nissab struct {
	client *api.Client
}

func NewNissab(client *api.Client) (*Nissab, error) {
	if client == nil {
		return nil, errors.New("[NewNissab] api client is required")
	}
	return &Nissab{client: client}, nil
}

// Thresholds fetches the current nissab thresholds (gold and silver).
func (s *Nissab) Thresholds(ctx context.Context) ([]NissabThreshold, error) {
	payload, err := api.Get[[]map[string]any](ctx, s.client, "/api/nissab", nil)
	if err != nil {
		return nil, translate(err, NissabUnreachableMsg, NissabUnavailableMsg, NissabLoadFailedMsg)
	}

	out := make([]NissabThreshold, 0, len(payload))
	for _, item := range payload {
		out = append(out, NissabThreshold{
			Metal:     utils.String(item["metal"]),
			Amount:    utils.Number(item["amount"]),
			Currency:  utils.StringOr(item["currency"], "EUR"),
			UpdatedAt: utils.String(item["updatedAt"]),
		})
	}
	return out, nil
}
