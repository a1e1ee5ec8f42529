package model

// GroupCount is one row of a GROUP BY count.
type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	CompaniesByStatus  []GroupCount `json:"companies_by_status"`
	ListingsByType     []GroupCount `json:"listings_by_freight_type"`
	OffersByStatus     []GroupCount `json:"offers_by_status"`
	ActiveListings     int64        `json:"active_listings"`
	PublishedSlides    int64        `json:"active_hero_slides"`
	DirectoryContacts  int64        `json:"directory_contacts"`
	RecentAuditEntries []AuditLog   `json:"recent_audit_entries"`
}
