package models

import "time"

type User struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email" validate:"required,email"`
	Nom       string `json:"nom" validate:"required,min=2,max=50"`
	Prenom    string `json:"prenom" validate:"required,min=2,max=50"`
	Telephone string `json:"telephone,omitempty" validate:"omitempty,min=10,max=15"`
	Langue    string `json:"langue,omitempty"`

	Role Role `json:"role"`

	// Account flags
	Actif        bool `json:"actif"`
	EmailVerifie bool `json:"emailVerifie"`

	// Timestamps
	DateCreation      *time.Time `json:"dateCreation,omitempty"`
	DerniereConnexion *time.Time `json:"derniereConnexion,omitempty"`

	// Open-ended per-user settings, passed through untouched
	Preferences map[string]interface{} `json:"preferences,omitempty"`

	NombreReclamations int `json:"nombreReclamations,omitempty"`
}

// DisplayName returns "Prenom Nom" for UI labels.
func (u *User) DisplayName() string {
	if u.Prenom == "" {
		return u.Nom
	}
	return u.Prenom + " " + u.Nom
}
