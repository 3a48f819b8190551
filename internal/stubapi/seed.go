// internal/stubapi/seed.go

package stubapi

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gira-client/internal/models"
)

// Fixed credentials for dev and tests.
const (
	SeedPassagerEmail    = "passager@gira.test"
	SeedSuperviseurEmail = "superviseur@gira.test"
	SeedAdminEmail       = "admin@gira.test"
	SeedPassword         = "motdepasse1"
)

var seedCategories = []string{"Bagages", "Embarquement", "Securite", "Services", "Proprete"}

func (s *Server) seed() {
	passager := s.addUser("Martin", "Claire", SeedPassagerEmail, models.RolePassager)
	superviseur := s.addUser("Diallo", "Amadou", SeedSuperviseurEmail, models.RoleSuperviseur)
	s.addUser("Benali", "Yasmine", SeedAdminEmail, models.RoleAdministrateur)

	now := time.Now()
	resolved := now.Add(-2 * time.Hour)
	score := 4

	s.complaints = []models.Complaint{
		{
			ID:           uuid.NewString(),
			Numero:       s.nextNumero(),
			Titre:        "Bagage perdu sur le vol AF1234",
			Description:  "Mon bagage n'est pas arrivé sur le tapis 7 après l'atterrissage.",
			Statut:       models.StatutEnCours,
			Priorite:     models.PrioriteHaute,
			CategorieNom: "Bagages",
			Demandeur:    passager,
			AgentAssigne: &superviseur,
			Fichiers:     []models.Fichier{},
			Commentaires: []models.Commentaire{
				{
					ID:           uuid.NewString(),
					Contenu:      "Recherche lancée auprès du service bagages.",
					Auteur:       superviseur,
					DateCreation: now.Add(-20 * time.Hour),
					IsInterne:    false,
				},
			},
			DateCreation:     now.Add(-24 * time.Hour),
			DateModification: now.Add(-20 * time.Hour),
		},
		{
			ID:               uuid.NewString(),
			Numero:           s.nextNumero(),
			Titre:            "Attente excessive au contrôle de sécurité",
			Description:      "Plus d'une heure d'attente au terminal 2 ce matin.",
			Statut:           models.StatutResolue,
			Priorite:         models.PrioriteNormale,
			CategorieNom:     "Securite",
			Demandeur:        passager,
			AgentAssigne:     &superviseur,
			Fichiers:         []models.Fichier{},
			Commentaires:     []models.Commentaire{},
			DateCreation:     now.Add(-72 * time.Hour),
			DateModification: resolved,
			DateResolution:   &resolved,
			Satisfaction:     &score,
		},
	}

	s.notifications = []models.Notification{
		{
			ID:           uuid.NewString(),
			Titre:        "Réclamation mise à jour",
			Message:      "Votre réclamation " + s.complaints[0].Numero + " est en cours de traitement.",
			Type:         models.NotificationTypeStatusChange,
			Destinataire: passager,
			IsLue:        false,
			DateCreation: now.Add(-20 * time.Hour),
			Lien:         "/app/complaints/" + s.complaints[0].ID,
		},
		{
			ID:           uuid.NewString(),
			Titre:        "Réclamation résolue",
			Message:      "Votre réclamation " + s.complaints[1].Numero + " a été résolue.",
			Type:         models.NotificationTypeResolution,
			Destinataire: passager,
			IsLue:        true,
			DateCreation: resolved,
		},
	}
}

func (s *Server) addUser(nom, prenom, email string, role models.RoleName) models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	now := time.Now()
	user := models.User{
		ID:     uuid.NewString(),
		Email:  email,
		Nom:    nom,
		Prenom: prenom,
		Role: models.Role{
			ID:    uuid.NewString(),
			Nom:   role,
			Actif: true,
		},
		Actif:        true,
		EmailVerifie: true,
		DateCreation: &now,
	}
	s.users[email] = &seededUser{user: user, passwordHash: hash}
	return user
}

func (s *Server) nextNumero() string {
	s.seq++
	return fmt.Sprintf("REC-%d-%04d", time.Now().Year(), s.seq)
}
