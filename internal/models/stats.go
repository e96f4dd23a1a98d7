package models

// GenerationStats aggregates system-wide generation metrics.
type GenerationStats struct {
	TotalItineraries    int     `json:"total_itineraries"`
	TotalUsers          int     `json:"total_users"`
	PopularDestinations []struct {
		Destination string `json:"destination"`
		Count       int    `json:"count"`
	} `json:"popular_destinations"`
	AverageDays       float64 `json:"average_days"`
	SuccessRate       float64 `json:"success_rate"`
	AvgGenerationTime float64 `json:"avg_generation_time"`
}

// PopularDestination is one entry in the popular-destinations listing.
type PopularDestination struct {
	Destination string  `json:"destination"`
	Count       int     `json:"count"`
	SuccessRate float64 `json:"success_rate"`
}

// SystemStatus is the system health payload.
type SystemStatus struct {
	TotalUsers       int             `json:"total_users"`
	TotalItineraries int             `json:"total_itineraries"`
	AIProviderStatus map[string]bool `json:"ai_providers_status"`
	SystemHealth     string          `json:"system_health"` // healthy | warning | error
}
