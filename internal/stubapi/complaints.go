// internal/stubapi/complaints.go

package stubapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gira-client/internal/models"
)

type createComplaintRequest struct {
	Titre           string                   `json:"titre" binding:"required,min=5,max=200"`
	Description     string                   `json:"description" binding:"required,min=10"`
	CategorieID     string                   `json:"categorieId" binding:"required"`
	SousCategorieID string                   `json:"sousCategorieId,omitempty"`
	Priorite        models.ComplaintPriority `json:"priorite" binding:"required"`
	Localisation    string                   `json:"localisation,omitempty"`
	LieuDescription string                   `json:"lieuDescription,omitempty"`
}

type statusUpdateRequest struct {
	Status models.ComplaintStatus `json:"status" binding:"required"`
}

type commentRequest struct {
	Contenu   string `json:"contenu" binding:"required,min=1"`
	IsInterne bool   `json:"isInterne"`
}

func (s *Server) listComplaints(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		failEnvelope(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if size <= 0 {
		size = 10
	}

	statuts := splitParam(c.Query("statut"))
	priorites := splitParam(c.Query("priorite"))
	recherche := strings.ToLower(c.Query("recherche"))

	s.mu.RLock()
	filtered := make([]models.Complaint, 0, len(s.complaints))
	for _, complaint := range s.complaints {
		// Passengers only see their own complaints.
		if user.Role.Nom == models.RolePassager && complaint.Demandeur.ID != user.ID {
			continue
		}
		if len(statuts) > 0 && !contains(statuts, string(complaint.Statut)) {
			continue
		}
		if len(priorites) > 0 && !contains(priorites, string(complaint.Priorite)) {
			continue
		}
		if recherche != "" &&
			!strings.Contains(strings.ToLower(complaint.Titre), recherche) &&
			!strings.Contains(strings.ToLower(complaint.Description), recherche) {
			continue
		}
		filtered = append(filtered, complaint)
	}
	s.mu.RUnlock()

	total := len(filtered)
	totalPages := (total + size - 1) / size
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	okEnvelope(c, http.StatusOK, models.ComplaintPage{
		Content:       filtered[start:end],
		TotalElements: total,
		TotalPages:    totalPages,
		Size:          size,
		Number:        page,
	})
}

func (s *Server) getComplaint(c *gin.Context) {
	id := c.Param("id")

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, complaint := range s.complaints {
		if complaint.ID == id {
			okEnvelope(c, http.StatusOK, complaint)
			return
		}
	}
	failEnvelope(c, http.StatusNotFound, "Complaint not found")
}

func (s *Server) createComplaint(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		failEnvelope(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failEnvelope(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	if !req.Priorite.IsValid() {
		failEnvelope(c, http.StatusBadRequest, "Invalid priority")
		return
	}

	now := time.Now()
	due := now.Add(72 * time.Hour)

	s.mu.Lock()
	complaint := models.Complaint{
		ID:               uuid.NewString(),
		Numero:           s.nextNumero(),
		Titre:            req.Titre,
		Description:      req.Description,
		Statut:           models.StatutSoumise,
		Priorite:         req.Priorite,
		CategorieNom:     req.CategorieID,
		Demandeur:        *user,
		Fichiers:         []models.Fichier{},
		Commentaires:     []models.Commentaire{},
		DateCreation:     now,
		DateModification: now,
		DateEcheance:     &due,
		Localisation:     req.Localisation,
		LieuDescription:  req.LieuDescription,
	}
	s.complaints = append([]models.Complaint{complaint}, s.complaints...)
	s.mu.Unlock()

	okEnvelope(c, http.StatusCreated, complaint)
}

func (s *Server) updateComplaintStatus(c *gin.Context) {
	id := c.Param("id")

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failEnvelope(c, http.StatusBadRequest, "Invalid request data")
		return
	}
	if !req.Status.IsValid() {
		failEnvelope(c, http.StatusBadRequest, "Invalid status")
		return
	}

	s.mu.Lock()
	var updated *models.Complaint
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			now := time.Now()
			s.complaints[i].Statut = req.Status
			s.complaints[i].DateModification = now
			if req.Status == models.StatutResolue {
				s.complaints[i].DateResolution = &now
			}
			copied := s.complaints[i]
			updated = &copied
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		failEnvelope(c, http.StatusNotFound, "Complaint not found")
		return
	}

	s.pushNotification(models.Notification{
		ID:           uuid.NewString(),
		Titre:        "Réclamation mise à jour",
		Message:      "Le statut de la réclamation " + updated.Numero + " est passé à " + string(updated.Statut) + ".",
		Type:         models.NotificationTypeStatusChange,
		Destinataire: updated.Demandeur,
		DateCreation: time.Now(),
		Lien:         "/app/complaints/" + updated.ID,
	})

	okEnvelope(c, http.StatusOK, updated)
}

func (s *Server) addComment(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		failEnvelope(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id := c.Param("id")
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failEnvelope(c, http.StatusBadRequest, "Invalid request data")
		return
	}

	comment := models.Commentaire{
		ID:           uuid.NewString(),
		Contenu:      req.Contenu,
		Auteur:       *user,
		DateCreation: time.Now(),
		IsInterne:    req.IsInterne,
	}

	s.mu.Lock()
	var target *models.Complaint
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			s.complaints[i].Commentaires = append(s.complaints[i].Commentaires, comment)
			s.complaints[i].DateModification = comment.DateCreation
			copied := s.complaints[i]
			target = &copied
			break
		}
	}
	s.mu.Unlock()

	if target == nil {
		failEnvelope(c, http.StatusNotFound, "Complaint not found")
		return
	}

	// Notify the requester about comments from others.
	if target.Demandeur.ID != user.ID {
		s.pushNotification(models.Notification{
			ID:           uuid.NewString(),
			Titre:        "Nouveau commentaire",
			Message:      "Un commentaire a été ajouté à la réclamation " + target.Numero + ".",
			Type:         models.NotificationTypeComment,
			Destinataire: target.Demandeur,
			DateCreation: comment.DateCreation,
			Lien:         "/app/complaints/" + target.ID,
		})
	}

	okEnvelope(c, http.StatusCreated, comment)
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
