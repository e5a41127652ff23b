package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/internal/utils"
)

const (
	StatisticsUnreachableMsg = "Impossible de contacter le serveur. Vérifiez votre connexion internet."
	StatisticsUnavailableMsg = "Le service des statistiques est momentanément indisponible. Réessayez plus tard."
	StatisticsLoadFailedMsg  = "Impossible de charger les statistiques."
)

// Statistics is the platform-wide summary shown on the home page.
type Statistics struct {
	TotalDonations float64
	DonorCount     float64
	CampaignCount  float64
}

// RankingEntry is one row of the donor leaderboard.
type RankingEntry struct {
	UserID string
	Name   string
	Score  float64
}

type Stats struct {
	client *api.Client
}

func NewStats(client *api.Client) (*Stats, error) {
	if client == nil {
		return nil, errors.New("[NewStats] api client is required")
	}
	return &Stats{client: client}, nil
}

func (s *Stats) Summary(ctx context.Context) (*Statistics, error) {
	payload, err := api.Get[map[string]any](ctx, s.client, "/api/statistics", nil)
	if err != nil {
		return nil, translate(err, StatisticsUnreachableMsg, StatisticsUnavailableMsg, StatisticsLoadFailedMsg)
	}
	return &Statistics{
		TotalDonations: utils.Number(payload["totalDonations"]),
		DonorCount:     utils.Number(payload["donorCount"]),
		CampaignCount:  utils.Number(payload["campaignCount"]),
	}, nil
}

func (s *Stats) Ranking(ctx context.Context) ([]RankingEntry, error) {
	payload, err := api.Get[[]map[string]any](ctx, s.client, "/api/statistics/ranking", nil)
	if err != nil {
		return nil, translate(err, StatisticsUnreachableMsg, StatisticsUnavailableMsg, StatisticsLoadFailedMsg)
	}

	out := make([]RankingEntry, 0, len(payload))
	for _, item := range payload {
		out = append(out, RankingEntry{
			UserID: utils.String(item["userId"]),
			Name:   utils.String(item["name"]),
			Score:  utils.Number(item["score"]),
		})
	}
	return out, nil
}
