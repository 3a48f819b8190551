// cmd/gira-console/main.go - console exerciser for the client stores.
// Logs in against a GIRA API (real or girastub), then walks the
// complaint, notification and dashboard stores and prints their
// snapshots.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gira-client/internal/api"
	"gira-client/internal/config"
	"gira-client/internal/models"
	"gira-client/internal/policy"
	"gira-client/internal/store"
	"gira-client/internal/tokenstore"
)

func main() {
	email := flag.String("email", "passager@gira.test", "account email")
	password := flag.String("password", "motdepasse1", "account password")
	flag.Parse()

	cfg := config.Load()
	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	tokens := tokenstore.NewFileStore(cfg.TokenFile)
	client := api.New(cfg.APIBaseURL, time.Duration(cfg.RequestTimeout)*time.Second, tokens, log)

	session := store.NewSession(client, tokens, log)
	complaints := store.NewComplaints(client, log)
	notifications := store.NewNotifications(client, log)
	dashboard := store.NewDashboard(client, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := session.Login(ctx, models.LoginForm{Email: *email, Password: *password}); err != nil {
		log.Fatalf("login failed: %s", session.Snapshot().Error)
	}
	snap := session.Snapshot()
	fmt.Printf("logged in as %s (%s)\n", snap.User.DisplayName(), snap.User.Role.Nom)

	decision := policy.CheckPublic(snap.IsAuthenticated, snap.User.Role.Nom)
	fmt.Printf("landing page: %s\n", decision.RedirectTo)

	if err := complaints.FetchList(ctx, 0, 10, models.ComplaintFilters{}); err == nil {
		cs := complaints.Snapshot()
		fmt.Printf("complaints: %d (page %d of %d)\n", cs.Pagination.Total, cs.Pagination.Page+1, cs.Pagination.TotalPages)
		for _, item := range cs.Items {
			fmt.Printf("  %-14s %-16s %s\n", item.Numero, item.Statut, item.Titre)
		}
	}

	if err := notifications.FetchAll(ctx); err == nil {
		ns := notifications.Snapshot()
		fmt.Printf("notifications: %d (%d unread)\n", len(ns.Items), ns.UnreadCount)
	}

	var fetchErr error
	switch snap.User.Role.Nom {
	case models.RoleAdministrateur:
		fetchErr = dashboard.FetchAdmin(ctx, dashboard.Snapshot().Filters)
	case models.RoleSuperviseur:
		fetchErr = dashboard.FetchAgent(ctx, dashboard.Snapshot().Filters)
	default:
		fetchErr = dashboard.FetchPassenger(ctx, dashboard.Snapshot().Filters)
	}
	if fetchErr == nil {
		ds := dashboard.Snapshot()
		if ds.Analytics != nil {
			fmt.Printf("dashboard: %d complaints, %.0f%% resolved, satisfaction %.1f\n",
				ds.Analytics.TotalComplaints,
				ds.Analytics.TauxResolution*100,
				ds.Analytics.SatisfactionClients.Moyenne)
		}
	}

	// Logout tears down the session only; the host application decides
	// whether the other slices are reset too.
	session.Logout()
	complaints.ClearFilters()
	notifications.Clear()
	dashboard.Reset()
	fmt.Println("logged out")
}
