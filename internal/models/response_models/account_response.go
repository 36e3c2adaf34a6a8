package response_models

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type AdminDashboard struct {
	Places             int64 `json:"places"`
	VisitedPlaces      int64 `json:"visited_places"`
	Journeys           int64 `json:"journeys"`
	Accounts           int64 `json:"accounts"`
	PendingDiscovered  int64 `json:"pending_discovered_events"`
	PendingCommunity   int64 `json:"pending_community_events"`
	PendingSuggestions int64 `json:"pending_suggestions"`
}
