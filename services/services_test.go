package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amane-app/amane-go/api"
	"github.com/amane-app/amane-go/services"
)

func newClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := api.New(srv.URL, nil)
	require.NoError(t, err)
	return client
}

func deadClient(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client, err := api.New(srv.URL, nil)
	require.NoError(t, err)
	return client
}

func TestActivitiesListCoercesDriftedPayload(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/activities", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"a1","title":"Iftar 2026","description":"d","imageUrl":"http://img","createdAt":"2026-01-01"},
			{"id":42,"title":null}
		]`))
	})
	svc, err := services.NewActivities(client)
	require.NoError(t, err)

	activities, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, activities, 2)
	require.Equal(t, "Iftar 2026", activities[0].Title)
	// drifted entry coerced to defaults rather than failing the list
	require.Empty(t, activities[1].ID)
	require.Empty(t, activities[1].Title)
}

func TestActivitiesTranslatesNetworkError(t *testing.T) {
	svc, err := services.NewActivities(deadClient(t))
	require.NoError(t, err)

	_, err = svc.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), services.ActivitiesUnreachableMsg)
}

func TestActivitiesTranslatesServerError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	svc, err := services.NewActivities(client)
	require.NoError(t, err)

	_, err = svc.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), services.ActivitiesUnavailableMsg)
}

func TestCampaignsDefaultsCurrency(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"c1","title":"Puits","goal":5000,"raised":1200.5,"active":true}]`))
	})
	svc, err := services.NewCampaigns(client)
	require.NoError(t, err)

	campaigns, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	require.Equal(t, "EUR", campaigns[0].Currency)
	require.Equal(t, 1200.5, campaigns[0].Raised)
	require.True(t, campaigns[0].Active)
}

func TestNissabThresholds(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/nissab", r.URL.Path)
		_, _ = w.Write([]byte(`[{"metal":"gold","amount":5400.12,"currency":"EUR","updatedAt":"2026-08-01"}]`))
	})
	svc, err := services.NewNissab(client)
	require.NoError(t, err)

	thresholds, err := svc.Thresholds(context.Background())
	require.NoError(t, err)
	require.Len(t, thresholds, 1)
	require.Equal(t, "gold", thresholds[0].Metal)
	require.Equal(t, 5400.12, thresholds[0].Amount)
}

func TestNotificationsRequireBearerToken(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"n1","title":"t","body":"b","read":false,"createdAt":"2026-08-20"}]`))
	})
	svc, err := services.NewNotifications(client)
	require.NoError(t, err)

	notifications, err := svc.List(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.False(t, notifications[0].Read)
}

func TestStatisticsSummaryAndRanking(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/statistics":
			_, _ = w.Write([]byte(`{"totalDonations":123456.78,"donorCount":321,"campaignCount":12}`))
		case "/api/statistics/ranking":
			_, _ = w.Write([]byte(`[{"userId":"u1","name":"Nadia","score":42}]`))
		}
	})
	svc, err := services.NewStats(client)
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, 123456.78, summary.TotalDonations)

	ranking, err := svc.Ranking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	require.Equal(t, "Nadia", ranking[0].Name)
}

func TestZakatsListCoercesCurrency(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/zakats", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"z1","amount":250,"status":"paid","createdAt":"2026-04-01"}]`))
	})
	svc, err := services.NewZakats(client)
	require.NoError(t, err)

	zakats, err := svc.List(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, zakats, 1)
	require.Equal(t, "EUR", zakats[0].Currency)
	require.Equal(t, float64(250), zakats[0].Amount)
}

func TestNewsletterSubscribe(t *testing.T) {
	var gotPath string
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	})
	svc, err := services.NewNewsletter(client)
	require.NoError(t, err)

	require.NoError(t, svc.Subscribe(context.Background(), "a@b.com"))
	require.Equal(t, "/api/newsletter", gotPath)
}

func TestContactSendTranslatesFailure(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	svc, err := services.NewContact(client)
	require.NoError(t, err)

	err = svc.Send(context.Background(), services.ContactMessage{Name: "N", Email: "a@b.com", Subject: "s", Message: "m"})
	require.Error(t, err)
	require.Contains(t, err.Error(), services.ContactFailedMsg)
}
