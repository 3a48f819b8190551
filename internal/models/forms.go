package models

// Outbound request bodies. Validation tags are enforced client-side by
// pkg/validator before the network call.

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterForm struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=100"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Nom             string `json:"nom" validate:"required,min=2,max=50"`
	Prenom          string `json:"prenom" validate:"required,min=2,max=50"`
	Telephone       string `json:"telephone,omitempty" validate:"omitempty,min=10,max=15"`
	DateNaissance   string `json:"dateNaissance,omitempty"`
	Adresse         string `json:"adresse,omitempty"`
}

type ComplaintForm struct {
	Titre           string            `json:"titre" validate:"required,min=5,max=200"`
	Description     string            `json:"description" validate:"required,min=10"`
	CategorieID     string            `json:"categorieId" validate:"required"`
	SousCategorieID string            `json:"sousCategorieId,omitempty"`
	Priorite        ComplaintPriority `json:"priorite" validate:"required"`
	Localisation    string            `json:"localisation,omitempty"`
	LieuDescription string            `json:"lieuDescription,omitempty"`
}

type CommentForm struct {
	Contenu   string `json:"contenu" validate:"required,min=1"`
	IsInterne bool   `json:"isInterne"`
}

type StatusUpdateForm struct {
	Status ComplaintStatus `json:"status" validate:"required"`
}
