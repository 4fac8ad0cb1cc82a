package domain

import "time"

type BloodGroupCount struct {
	BloodGroup string `json:"bloodGroup" db:"blood_group"`
	Total      int64  `json:"total" db:"total"`
	Blocked    int64  `json:"blocked" db:"blocked"`
}

type DashboardStats struct {
	TotalDonors       int64             `json:"totalDonors"`
	BlockedDonors     int64             `json:"blockedDonors"`
	DonorsByGroup     []BloodGroupCount `json:"donorsByGroup"`
	PendingRequests   int64             `json:"pendingRequests"`
	AcceptedRequests  int64             `json:"acceptedRequests"`
	CompletedRequests int64             `json:"completedRequests"`
	TotalPatients     int64             `json:"totalPatients"`
	TotalStories      int64             `json:"totalStories"`
	LastRequestAt     *time.Time        `json:"lastRequestAt"`
}
