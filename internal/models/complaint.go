// internal/models/complaint.go

package models

import "time"

// ComplaintStatus values match the backend state machine.
type ComplaintStatus string

const (
	StatutSoumise       ComplaintStatus = "SOUMISE"
	StatutEnCours       ComplaintStatus = "EN_COURS"
	StatutEnAttenteInfo ComplaintStatus = "EN_ATTENTE_INFO"
	StatutResolue       ComplaintStatus = "RESOLUE"
	StatutFermee        ComplaintStatus = "FERMEE"
	StatutAnnulee       ComplaintStatus = "ANNULEE"
)

func (s ComplaintStatus) IsValid() bool {
	switch s {
	case StatutSoumise, StatutEnCours, StatutEnAttenteInfo, StatutResolue, StatutFermee, StatutAnnulee:
		return true
	}
	return false
}

type ComplaintPriority string

const (
	PrioriteBasse   ComplaintPriority = "BASSE"
	PrioriteNormale ComplaintPriority = "NORMALE"
	PrioriteHaute   ComplaintPriority = "HAUTE"
	PrioriteUrgente ComplaintPriority = "URGENTE"
)

func (p ComplaintPriority) IsValid() bool {
	switch p {
	case PrioriteBasse, PrioriteNormale, PrioriteHaute, PrioriteUrgente:
		return true
	}
	return false
}

type Fichier struct {
	ID         string    `json:"id"`
	Nom        string    `json:"nom"`
	Type       string    `json:"type"`
	Taille     int64     `json:"taille"`
	URL        string    `json:"url"`
	Hash       string    `json:"hash,omitempty"`
	DateUpload time.Time `json:"dateUpload"`
}

// Commentaire entries are append-only within a complaint.
type Commentaire struct {
	ID           string    `json:"id"`
	Contenu      string    `json:"contenu"`
	Auteur       User      `json:"auteur"`
	DateCreation time.Time `json:"dateCreation"`
	IsInterne    bool      `json:"isInterne"`
}

type Complaint struct {
	ID          string            `json:"id"`
	Numero      string            `json:"numero"`
	Titre       string            `json:"titre"`
	Description string            `json:"description"`
	Statut      ComplaintStatus   `json:"statut"`
	Priorite    ComplaintPriority `json:"priorite"`

	CategorieNom     string `json:"categorieNom"`
	SousCategorieNom string `json:"sousCategorieNom,omitempty"`

	Demandeur    User  `json:"demandeur"`
	AgentAssigne *User `json:"agentAssigne,omitempty"`

	Fichiers     []Fichier     `json:"fichiers"`
	Commentaires []Commentaire `json:"commentaires"`

	DateCreation     time.Time  `json:"dateCreation"`
	DateModification time.Time  `json:"dateModification"`
	DateResolution   *time.Time `json:"dateResolution,omitempty"`
	DateEcheance     *time.Time `json:"dateEcheance,omitempty"`

	Localisation    string `json:"localisation,omitempty"`
	LieuDescription string `json:"lieuDescription,omitempty"`

	Satisfaction            *int   `json:"satisfaction,omitempty"`
	CommentaireSatisfaction string `json:"commentaireSatisfaction,omitempty"`

	// Free-form metadata is forwarded as-is, never interpreted here.
	Metadonnees string `json:"metadonnees,omitempty"`
}

// ComplaintFilters is shallow-merged by the store; zero fields keep
// their previous value, explicit Clear resets the whole block.
type ComplaintFilters struct {
	Statut    []ComplaintStatus   `json:"statut,omitempty"`
	Priorite  []ComplaintPriority `json:"priorite,omitempty"`
	Categorie []string            `json:"categorie,omitempty"`
	Agent     []string            `json:"agent,omitempty"`
	DateDebut string              `json:"dateDebut,omitempty"`
	DateFin   string              `json:"dateFin,omitempty"`
	Recherche string              `json:"recherche,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
