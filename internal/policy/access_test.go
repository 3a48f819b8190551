package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gira-client/internal/models"
)

func TestCheckProtected(t *testing.T) {
	cases := []struct {
		name            string
		isAuthenticated bool
		role            models.RoleName
		requiredRole    models.RoleName
		from            string
		want            Decision
	}{
		{
			name: "unauthenticated redirects to login with origin",
			from: "/app/complaints/42",
			want: Decision{RedirectTo: RouteLogin, From: "/app/complaints/42"},
		},
		{
			name:            "authenticated without role requirement renders",
			isAuthenticated: true,
			role:            models.RolePassager,
			want:            Decision{Allowed: true},
		},
		{
			name:            "role match renders",
			isAuthenticated: true,
			role:            models.RoleAdministrateur,
			requiredRole:    models.RoleAdministrateur,
			want:            Decision{Allowed: true},
		},
		{
			name:            "role mismatch redirects admin to admin view",
			isAuthenticated: true,
			role:            models.RoleAdministrateur,
			requiredRole:    models.RoleSuperviseur,
			want:            Decision{RedirectTo: RouteAdmin},
		},
		{
			name:            "role mismatch redirects passenger to dashboard",
			isAuthenticated: true,
			role:            models.RolePassager,
			requiredRole:    models.RoleAdministrateur,
			want:            Decision{RedirectTo: RouteDashboard},
		},
		{
			name:            "unknown role fails open to dashboard",
			isAuthenticated: true,
			role:            "",
			requiredRole:    models.RoleAdministrateur,
			want:            Decision{RedirectTo: RouteDashboard},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckProtected(tc.isAuthenticated, tc.role, tc.requiredRole, tc.from)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCheckPublic(t *testing.T) {
	cases := []struct {
		name            string
		isAuthenticated bool
		role            models.RoleName
		want            Decision
	}{
		{
			name: "anonymous renders public page",
			want: Decision{Allowed: true},
		},
		{
			name:            "administrator goes to admin view",
			isAuthenticated: true,
			role:            models.RoleAdministrateur,
			want:            Decision{RedirectTo: RouteAdmin},
		},
		{
			name:            "superviseur goes to dashboard",
			isAuthenticated: true,
			role:            models.RoleSuperviseur,
			want:            Decision{RedirectTo: RouteDashboard},
		},
		{
			name:            "passenger goes to dashboard",
			isAuthenticated: true,
			role:            models.RolePassager,
			want:            Decision{RedirectTo: RouteDashboard},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckPublic(tc.isAuthenticated, tc.role)
			assert.Equal(t, tc.want, got)
		})
	}
}
