package models

type SatisfactionStats struct {
	Moyenne          float64        `json:"moyenne"`
	TotalEvaluations int            `json:"totalEvaluations"`
	Repartition      map[string]int `json:"repartition,omitempty"`
}

// DashboardAnalytics is replaced wholesale on every successful fetch;
// only UpdateMetric patches it in place.
type DashboardAnalytics struct {
	TotalComplaints      int                `json:"totalComplaints"`
	ComplaintsEnCours    int                `json:"complaintsEnCours"`
	ComplaintsResolues   int                `json:"complaintsResolues"`
	TauxResolution       float64            `json:"tauxResolution"`
	TempsResolutionMoyen map[string]float64 `json:"tempsResolutionMoyen,omitempty"`
	SatisfactionClients  SatisfactionStats  `json:"satisfactionClients"`
	SLAComplianceRate    float64            `json:"slaComplianceRate"`
	SLABreachedCount     int                `json:"slaBreachedCount"`
}

// DashboardFilters: Periode is one of jour, semaine, mois, annee.
type DashboardFilters struct {
	Periode   string `json:"periode,omitempty"`
	DateDebut string `json:"dateDebut,omitempty"`
	DateFin   string `json:"dateFin,omitempty"`
	Agent     string `json:"agent,omitempty"`
	Categorie string `json:"categorie,omitempty"`
}

const PeriodeDefault = "jour"
