// internal/stubapi/dashboard.go

package stubapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/montanaflynn/stats"

	"gira-client/internal/models"
)

// Dashboard endpoints return the raw analytics payload, no envelope.

func (s *Server) dashboardAnalytics(c *gin.Context) {
	s.serveAnalytics(c, nil)
}

func (s *Server) dashboardAdmin(c *gin.Context) {
	s.serveAnalytics(c, nil)
}

// dashboardAgent scopes the aggregate to complaints assigned to the
// caller.
func (s *Server) dashboardAgent(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	s.serveAnalytics(c, func(complaint models.Complaint) bool {
		return complaint.AgentAssigne != nil && complaint.AgentAssigne.ID == user.ID
	})
}

// dashboardPassenger scopes the aggregate to the caller's own
// complaints.
func (s *Server) dashboardPassenger(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	s.serveAnalytics(c, func(complaint models.Complaint) bool {
		return complaint.Demandeur.ID == user.ID
	})
}

func (s *Server) serveAnalytics(c *gin.Context, include func(models.Complaint) bool) {
	s.mu.RLock()
	selected := make([]models.Complaint, 0, len(s.complaints))
	for _, complaint := range s.complaints {
		if include == nil || include(complaint) {
			selected = append(selected, complaint)
		}
	}
	s.mu.RUnlock()

	c.JSON(http.StatusOK, computeAnalytics(selected))
}

func computeAnalytics(complaints []models.Complaint) models.DashboardAnalytics {
	analytics := models.DashboardAnalytics{
		TempsResolutionMoyen: map[string]float64{},
		SatisfactionClients: models.SatisfactionStats{
			Repartition: map[string]int{},
		},
	}

	resolutionHours := map[string][]float64{}
	satisfactionScores := []float64{}
	slaMet := 0
	slaTotal := 0

	for _, complaint := range complaints {
		analytics.TotalComplaints++

		switch complaint.Statut {
		case models.StatutEnCours, models.StatutEnAttenteInfo:
			analytics.ComplaintsEnCours++
		case models.StatutResolue, models.StatutFermee:
			analytics.ComplaintsResolues++
		}

		if complaint.DateResolution != nil {
			hours := complaint.DateResolution.Sub(complaint.DateCreation).Hours()
			resolutionHours[complaint.CategorieNom] = append(resolutionHours[complaint.CategorieNom], hours)

			slaTotal++
			if complaint.DateEcheance == nil || !complaint.DateResolution.After(*complaint.DateEcheance) {
				slaMet++
			} else {
				analytics.SLABreachedCount++
			}
		}

		if complaint.Satisfaction != nil {
			score := *complaint.Satisfaction
			satisfactionScores = append(satisfactionScores, float64(score))
			analytics.SatisfactionClients.Repartition[strconv.Itoa(score)]++
		}
	}

	if analytics.TotalComplaints > 0 {
		analytics.TauxResolution = float64(analytics.ComplaintsResolues) / float64(analytics.TotalComplaints)
	}
	for categorie, hours := range resolutionHours {
		if mean, err := stats.Mean(hours); err == nil {
			analytics.TempsResolutionMoyen[categorie] = mean
		}
	}
	if len(satisfactionScores) > 0 {
		if mean, err := stats.Mean(satisfactionScores); err == nil {
			analytics.SatisfactionClients.Moyenne = mean
		}
		analytics.SatisfactionClients.TotalEvaluations = len(satisfactionScores)
	}
	if slaTotal > 0 {
		analytics.SLAComplianceRate = float64(slaMet) / float64(slaTotal)
	}

	return analytics
}
