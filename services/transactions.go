package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/internal/utils"
)

const (
	TransactionsUnreachableMsg = "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	TransactionsUnavailableMsg = "Le service des transactions est momentanément indisponible. Réessayez plus tard."
	TransactionsLoadFailedMsg  = "Impossible de charger les transactions."
)

// Transaction is one wallet movement of the authenticated user.
type Transaction struct {
	ID        string
	Amount    float64
	Currency  string
	Type      string
	Status    string
	CreatedAt string
}

type Transactions struct {
	client *api.Client
}

func NewTransactions(client *api.Client) (*Transactions, error) {
	if client == nil {
		return nil, errors.New("[NewTransactions] api client is required")
	}
	return &Transactions{client: client}, nil
}

// List fetches the user's transactions. Requires a bearer token.
func (s *Transactions) List(ctx context.Context, token string) ([]Transaction, error) {
	payload, err := api.Get[[]map[string]any](ctx, s.client, "/api/transactions", &api.Options{Token: token})
	if err != nil {
		return nil, translate(err, TransactionsUnreachableMsg, TransactionsUnavailableMsg, TransactionsLoadFailedMsg)
	}

	out := make([]Transaction, 0, len(payload))
	for _, item := range payload {
		out = append(out, Transaction{
			ID:        utils.String(item["id"]),
			Amount:    utils.Number(item["amount"]),
			Currency:  utils.StringOr(item["currency"], "EUR"),
			Type:      utils.String(item["type"]),
			Status:    utils.String(item["status"]),
			CreatedAt: utils.String(item["createdAt"]),
		})
	}
	return out, nil
}
