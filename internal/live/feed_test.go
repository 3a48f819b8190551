package live

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gira-client/internal/api"
	"gira-client/internal/models"
	"gira-client/internal/store"
	"gira-client/internal/stubapi"
	"gira-client/internal/tokenstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func login(t *testing.T, client *api.Client, tokens tokenstore.Store, email string) *models.AuthResponse {
	t.Helper()

	resp, err := client.Login(context.Background(), models.LoginForm{
		Email:    email,
		Password: stubapi.SeedPassword,
	})
	require.NoError(t, err)
	require.NoError(t, tokens.Set(resp.AccessToken))
	return resp
}

func TestFeedDeliversPushedNotifications(t *testing.T) {
	srv := httptest.NewServer(stubapi.New().Router())
	defer srv.Close()

	log := quietLogger()

	// Passenger side: a feed wired into the notification store.
	passagerTokens := tokenstore.NewMemStore()
	passagerClient := api.New(srv.URL, 5*time.Second, passagerTokens, log)
	login(t, passagerClient, passagerTokens, stubapi.SeedPassagerEmail)

	notifications := store.NewNotifications(passagerClient, log)
	feed := New(srv.URL, passagerTokens, notifications, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = feed.Run(ctx) }()

	// Supervisor side: a status change on the passenger's complaint
	// triggers a push.
	superviseurTokens := tokenstore.NewMemStore()
	superviseurClient := api.New(srv.URL, 5*time.Second, superviseurTokens, log)
	login(t, superviseurClient, superviseurTokens, stubapi.SeedSuperviseurEmail)

	page, err := superviseurClient.ListComplaints(context.Background(), 0, 10, models.ComplaintFilters{
		Statut: []models.ComplaintStatus{models.StatutEnCours},
	})
	require.NoError(t, err)
	require.NotEmpty(t, page.Content)
	complaintID := page.Content[0].ID

	// The dial happens asynchronously: keep triggering until a frame
	// lands or the deadline passes.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		_, err := superviseurClient.UpdateComplaintStatus(context.Background(), complaintID, models.StatutEnAttenteInfo)
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)
		if len(notifications.Snapshot().Items) > 0 {
			break
		}
	}

	snap := notifications.Snapshot()
	require.NotEmpty(t, snap.Items, "no notification received over the feed")
	received := snap.Items[0]
	assert.Equal(t, models.NotificationTypeStatusChange, received.Type)
	assert.False(t, received.IsLue)
	assert.Contains(t, received.Lien, complaintID)
	assert.Equal(t, len(snap.Items), snap.UnreadCount)

	cancel()
}

func TestFeedRejectsBadToken(t *testing.T) {
	srv := httptest.NewServer(stubapi.New().Router())
	defer srv.Close()

	tokens := tokenstore.NewMemStore()
	require.NoError(t, tokens.Set("not-a-valid-jwt"))

	feed := New(srv.URL, tokens, store.NewNotifications(nil, quietLogger()), quietLogger())
	err := feed.Run(context.Background())
	assert.Error(t, err)
}

func TestFeedDialFailure(t *testing.T) {
	tokens := tokenstore.NewMemStore()
	feed := New("http://127.0.0.1:1", tokens, store.NewNotifications(nil, quietLogger()), quietLogger())
	err := feed.Run(context.Background())
	assert.Error(t, err)
}

func TestFeedURLDerivation(t *testing.T) {
	tokens := tokenstore.NewMemStore()
	sink := store.NewNotifications(nil, quietLogger())

	tests := []struct {
		base string
		want string
	}{
		{"http://api.gira.test", "ws://api.gira.test/ws"},
		{"https://api.gira.test/", "wss://api.gira.test/ws"},
	}
	for _, tc := range tests {
		feed := New(tc.base, tokens, sink, quietLogger())
		assert.Equal(t, tc.want, feed.wsURL)
	}
}
