package models

// Restaurant is the browse-level view of a restaurant as served by the
// backend's restaurant endpoints.
type Restaurant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Town         string   `json:"town"`
	SlugName     string   `json:"slug_name"`
	LogoURL      string   `json:"logo_url"`
	Location     Location `json:"location"`
	Cuisines     []string `json:"cuisines"`
	Rating       float64  `json:"rating"`
	TotalRatings float64  `json:"total_ratings"`
	AvgPrepTime  float64  `json:"avg_prep_time"` // Average preparation time in minutes
	IsOpen       bool     `json:"is_open"`
}

// MenuItem is a purchasable food item belonging to a restaurant.
type MenuItem struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Available    bool    `json:"available"`
}

// Category groups menu items for browsing.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}
