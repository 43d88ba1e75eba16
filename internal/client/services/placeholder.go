package services

import "newsdesk/internal/client/models"

// placeholderItems is the fixed synthetic set served when live fetch is
// exhausted and no snapshot was ever captured. The titles make it obvious
// this is not real data; the UI never has to render a hard failure state on
// the read path.
func placeholderItems() []models.Item {
	return []models.Item{
		{
			ID:       "placeholder-1",
			Title:    "Sample: Local council meets on road repairs",
			BodyHTML: "<p>Live content is temporarily unavailable. This is sample data.</p>",
			Category: "general",
			Status:   models.StatusPending,
		},
		{
			ID:       "placeholder-2",
			Title:    "Sample: Weekend market hours announced",
			BodyHTML: "<p>Live content is temporarily unavailable. This is sample data.</p>",
			Category: "general",
			Status:   models.StatusPending,
		},
	}
}
