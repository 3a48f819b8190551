// Package api is the GIRA transport client. It owns the HTTP plumbing
// the stores depend on: bearer injection from the token slot, the
// envelope unwrap adapter and the two-class error mapping.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"gira-client/internal/models"
	"gira-client/internal/tokenstore"
)

type Client struct {
	rest   *resty.Client
	tokens tokenstore.Store
	log    *logrus.Logger
}

func New(baseURL string, timeout time.Duration, tokens tokenstore.Store, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}

	rest := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	rest.JSONMarshal = json.Marshal
	rest.JSONUnmarshal = json.Unmarshal

	c := &Client{rest: rest, tokens: tokens, log: log}

	// The persisted token is read per request so a login/logout in one
	// store is visible to the next call without rebuilding the client.
	rest.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if tokens == nil {
			return nil
		}
		token, err := tokens.Get()
		if err == nil && token != "" {
			r.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.rest.BaseURL
}

func (c *Client) do(ctx context.Context, method, path, fallback string, query map[string]string, body, out interface{}) error {
	req := c.rest.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.WithError(err).WithField("path", path).Warn("api request failed")
		return networkError(err)
	}

	if err := Unwrap(resp.Body(), resp.StatusCode(), fallback, out); err != nil {
		c.log.WithField("path", path).WithField("status", resp.StatusCode()).Debug("api request rejected")
		return err
	}
	return nil
}

// --- auth ---

func (c *Client) Login(ctx context.Context, form models.LoginForm) (*models.AuthResponse, error) {
	var res models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "Login failed", nil, form, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, form models.RegisterForm) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", "Registration failed", nil, form, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", "Failed to fetch user profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- complaints ---

func (c *Client) ListComplaints(ctx context.Context, page, size int, filters models.ComplaintFilters) (*models.ComplaintPage, error) {
	query := map[string]string{
		"page": strconv.Itoa(page),
		"size": strconv.Itoa(size),
	}
	addFilterParams(query, filters)

	var pageRes models.ComplaintPage
	if err := c.do(ctx, http.MethodGet, "/complaints", "Failed to fetch complaints", query, nil, &pageRes); err != nil {
		return nil, err
	}
	return &pageRes, nil
}

func (c *Client) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := c.do(ctx, http.MethodGet, "/complaints/"+id, "Failed to fetch complaint", nil, nil, &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (c *Client) CreateComplaint(ctx context.Context, form models.ComplaintForm) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := c.do(ctx, http.MethodPost, "/complaints", "Failed to create complaint", nil, form, &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (c *Client) UpdateComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	var complaint models.Complaint
	body := models.StatusUpdateForm{Status: status}
	if err := c.do(ctx, http.MethodPatch, "/complaints/"+id+"/status", "Failed to update complaint status", nil, body, &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (c *Client) AddComment(ctx context.Context, id string, form models.CommentForm) (*models.Commentaire, error) {
	var comment models.Commentaire
	if err := c.do(ctx, http.MethodPost, "/complaints/"+id+"/comments", "Failed to add comment", nil, form, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// --- notifications ---

// Notifications normalizes the two payloads the backend is known to
// return: {notifications, unreadCount} or a bare array.
func (c *Client) Notifications(ctx context.Context) (*models.NotificationPage, error) {
	req := c.rest.R().SetContext(ctx)
	resp, err := req.Get("/notifications")
	if err != nil {
		return nil, networkError(err)
	}

	var page models.NotificationPage
	if err := Unwrap(resp.Body(), resp.StatusCode(), "Failed to fetch notifications", &page); err == nil && page.Notifications != nil {
		return &page, nil
	} else if err != nil && resp.StatusCode() >= 400 {
		return nil, err
	}

	var items []models.Notification
	if err := Unwrap(resp.Body(), resp.StatusCode(), "Failed to fetch notifications", &items); err != nil {
		return nil, err
	}
	return &models.NotificationPage{Notifications: items}, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/notifications/"+id+"/read", "Failed to mark notification as read", nil, nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/notifications/read-all", "Failed to mark all notifications as read", nil, nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notifications/"+id, "Failed to delete notification", nil, nil, nil)
}

// --- dashboard ---

func (c *Client) DashboardAnalytics(ctx context.Context, filters models.DashboardFilters) (*models.DashboardAnalytics, error) {
	return c.fetchDashboard(ctx, "/dashboard/analytics", "Failed to fetch dashboard analytics",
		dashboardParams(filters, true, true))
}

func (c *Client) DashboardAdmin(ctx context.Context, filters models.DashboardFilters) (*models.DashboardAnalytics, error) {
	return c.fetchDashboard(ctx, "/dashboard/admin", "Failed to fetch admin dashboard",
		dashboardParams(filters, true, false))
}

func (c *Client) DashboardAgent(ctx context.Context, filters models.DashboardFilters) (*models.DashboardAnalytics, error) {
	return c.fetchDashboard(ctx, "/dashboard/agent", "Failed to fetch agent dashboard",
		dashboardParams(filters, true, false))
}

// DashboardPassenger forwards date bounds only; the backend scopes the
// rest to the caller's own complaints.
func (c *Client) DashboardPassenger(ctx context.Context, filters models.DashboardFilters) (*models.DashboardAnalytics, error) {
	return c.fetchDashboard(ctx, "/dashboard/passenger", "Failed to fetch passenger dashboard",
		dashboardParams(filters, false, false))
}

func (c *Client) fetchDashboard(ctx context.Context, path, fallback string, query map[string]string) (*models.DashboardAnalytics, error) {
	var analytics models.DashboardAnalytics
	if err := c.do(ctx, http.MethodGet, path, fallback, query, nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

func dashboardParams(filters models.DashboardFilters, withPeriode, withScope bool) map[string]string {
	query := map[string]string{}
	if withPeriode && filters.Periode != "" {
		query["periode"] = filters.Periode
	}
	if filters.DateDebut != "" {
		query["dateDebut"] = filters.DateDebut
	}
	if filters.DateFin != "" {
		query["dateFin"] = filters.DateFin
	}
	if withScope {
		if filters.Agent != "" {
			query["agent"] = filters.Agent
		}
		if filters.Categorie != "" {
			query["categorie"] = filters.Categorie
		}
	}
	return query
}

func addFilterParams(query map[string]string, filters models.ComplaintFilters) {
	if len(filters.Statut) > 0 {
		values := make([]string, len(filters.Statut))
		for i, s := range filters.Statut {
			values[i] = string(s)
		}
		query["statut"] = strings.Join(values, ",")
	}
	if len(filters.Priorite) > 0 {
		values := make([]string, len(filters.Priorite))
		for i, p := range filters.Priorite {
			values[i] = string(p)
		}
		query["priorite"] = strings.Join(values, ",")
	}
	if len(filters.Categorie) > 0 {
		query["categorie"] = strings.Join(filters.Categorie, ",")
	}
	if len(filters.Agent) > 0 {
		query["agent"] = strings.Join(filters.Agent, ",")
	}
	if filters.DateDebut != "" {
		query["dateDebut"] = filters.DateDebut
	}
	if filters.DateFin != "" {
		query["dateFin"] = filters.DateFin
	}
	if filters.Recherche != "" {
		query["recherche"] = filters.Recherche
	}
}
