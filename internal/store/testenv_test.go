package store

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"gira-client/internal/api"
	"gira-client/internal/models"
	"gira-client/internal/stubapi"
	"gira-client/internal/tokenstore"
)

// testEnv wires the client stack against an in-memory stub backend.
type testEnv struct {
	client *api.Client
	tokens *tokenstore.MemStore
	srv    *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(stubapi.New().Router())
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemStore()
	client := api.New(srv.URL, 5*time.Second, tokens, quietLogger())
	return &testEnv{client: client, tokens: tokens, srv: srv}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func loginAs(t *testing.T, session *Session, email string) {
	t.Helper()
	err := session.Login(context.Background(), models.LoginForm{
		Email:    email,
		Password: stubapi.SeedPassword,
	})
	require.NoError(t, err)
}
