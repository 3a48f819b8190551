// internal/models/roles.go

package models

// RoleName is the name of a user role in the GIRA system.
type RoleName string

const (
	RolePassager       RoleName = "PASSAGER"
	RoleSuperviseur    RoleName = "SUPERVISEUR"
	RoleAdministrateur RoleName = "ADMINISTRATEUR"
)

// Role as delivered by the backend. The name carries the semantics;
// permissions are an opaque list forwarded to the UI.
type Role struct {
	ID               string   `json:"id,omitempty"`
	Nom              RoleName `json:"nom"`
	Description      string   `json:"description,omitempty"`
	Permissions      []string `json:"permissions,omitempty"`
	Actif            bool     `json:"actif"`
	DateCreation     string   `json:"dateCreation,omitempty"`
	DateModification string   `json:"dateModification,omitempty"`
}

// IsValid reports whether the role name is one the system knows.
func (r RoleName) IsValid() bool {
	switch r {
	case RolePassager, RoleSuperviseur, RoleAdministrateur:
		return true
	}
	return false
}

func (r RoleName) String() string {
	return string(r)
}

// RoleFromString converts a raw string into a RoleName.
func RoleFromString(role string) (RoleName, bool) {
	r := RoleName(role)
	if r.IsValid() {
		return r, true
	}
	return "", false
}

// AllRoles returns the list of supported roles.
func AllRoles() []RoleName {
	return []RoleName{RolePassager, RoleSuperviseur, RoleAdministrateur}
}
