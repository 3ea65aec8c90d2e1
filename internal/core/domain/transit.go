package domain

import "time"

// Station is a stop on the network.
type Station struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Zone       int       `json:"zone"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accessible bool      `json:"accessible"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Line is a named service running over an ordered sequence of stations.
type Line struct {
	ID         int64   `json:"id"`
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	StationIDs []int64 `json:"station_ids"`
	Active     bool    `json:"active"`
}

// RouteDefinition is an admin-managed route template between two terminals.
type RouteDefinition struct {
	ID            int64   `json:"id"`
	LineID        int64   `json:"line_id"`
	OriginID      int64   `json:"origin_id"`
	DestinationID int64   `json:"destination_id"`
	StationIDs    []int64 `json:"station_ids"`
}

// Fare is the price of travel between two zones.
type Fare struct {
	ID       int64   `json:"id"`
	FromZone int     `json:"from_zone"`
	ToZone   int     `json:"to_zone"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// PlanRequest describes a journey the passenger wants to make.
type PlanRequest struct {
	FromStationID int64      `json:"from_station_id"`
	ToStationID   int64      `json:"to_station_id"`
	DepartAt      *time.Time `json:"depart_at,omitempty"`
}

// Leg is one ride within a journey, on a single line.
type Leg struct {
	LineID      int64  `json:"line_id"`
	LineName    string `json:"line_name"`
	FromStation string `json:"from_station"`
	ToStation   string `json:"to_station"`
	Stops       int    `json:"stops"`
	DurationMin int    `json:"duration_min"`
}

// Journey is one route option returned by the planner.
type Journey struct {
	Legs        []Leg   `json:"legs"`
	Transfers   int     `json:"transfers"`
	DurationMin int     `json:"duration_min"`
	Fare        float64 `json:"fare"`
	Currency    string  `json:"currency"`
}

// AdminUser is the account record shown on the admin user-management page.
type AdminUser struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	IsAdmin   bool       `json:"is_admin"`
	Roles     []string   `json:"roles"`
	Active    bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// AnalyticsSummary is the aggregate block rendered on the analytics page.
// Charts are not rendered by the console; only these totals are shown.
type AnalyticsSummary struct {
	TotalJourneys  int64     `json:"total_journeys"`
	ActiveUsers    int64     `json:"active_users"`
	Revenue        float64   `json:"revenue"`
	Currency       string    `json:"currency"`
	BusiestStation string    `json:"busiest_station"`
	GeneratedAt    time.Time `json:"generated_at"`
}
