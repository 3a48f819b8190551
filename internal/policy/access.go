// Package policy is the pure route-access decision consulted by route
// guards. It owns no state: the same inputs always yield the same
// decision, and denial is expressed as a redirect, never an error.
package policy

import "gira-client/internal/models"

const (
	RouteLogin     = "/auth/login"
	RouteAdmin     = "/app/admin"
	RouteDashboard = "/app/dashboard"
)

// Decision tells the router whether to mount the page or navigate
// elsewhere. From carries the original location for post-login return.
type Decision struct {
	Allowed    bool
	RedirectTo string
	From       string
}

// Landing maps a role to its landing route. Unknown or absent roles
// fall open to the least-privileged dashboard view.
func Landing(role models.RoleName) string {
	if role == models.RoleAdministrateur {
		return RouteAdmin
	}
	return RouteDashboard
}

// CheckProtected gates a protected page. Unauthenticated users go to
// login with the original location attached; a failed required-role
// check redirects silently to the user's own landing page.
func CheckProtected(isAuthenticated bool, role, requiredRole models.RoleName, from string) Decision {
	if !isAuthenticated {
		return Decision{RedirectTo: RouteLogin, From: from}
	}
	if requiredRole != "" && role != requiredRole {
		return Decision{RedirectTo: Landing(role)}
	}
	return Decision{Allowed: true}
}

// CheckPublic gates a public-only page, sending an already
// authenticated user to their landing page.
func CheckPublic(isAuthenticated bool, role models.RoleName) Decision {
	if isAuthenticated {
		return Decision{RedirectTo: Landing(role)}
	}
	return Decision{Allowed: true}
}
