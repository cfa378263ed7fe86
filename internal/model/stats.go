package model

// Stats is the dashboard overview: how many patients per status and per
// age bucket.
type Stats struct {
	TotalPatients int            `json:"total_patients"`
	StatusCounts  map[string]int `json:"status_counts"`
	AgeGroups     AgeGroups      `json:"age_groups"`
}

// AgeGroups buckets patients the way the clinic dashboard charts them.
type AgeGroups struct {
	Children int `json:"children"` // 0-14
	Adults   int `json:"adults"`   // 15-59
	Elderly  int `json:"elderly"`  // 60+
}
