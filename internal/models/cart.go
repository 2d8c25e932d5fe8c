package models

// CartItem is a single line item in the order draft. Items are kept in
// insertion order and all items in a cart share the same RestaurantID.
type CartItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	Notes        string  `json:"notes,omitempty"`
	RestaurantID string  `json:"restaurant_id"`
}

// DeliveryOption is a priced delivery choice attached to the cart.
type DeliveryOption struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	EstimatedTime string  `json:"estimated_time"`
}

// CartState is the full order draft. Subtotal, DeliveryFee, ServiceFee and
// Total are derived fields, recomputed after every mutation and never set
// directly by callers.
type CartState struct {
	Items          []CartItem      `json:"items"`
	RestaurantID   string          `json:"restaurant_id,omitempty"`
	RestaurantName string          `json:"restaurant_name,omitempty"`
	DeliveryOption *DeliveryOption `json:"delivery_option,omitempty"`
	Subtotal       float64         `json:"subtotal"`
	DeliveryFee    float64         `json:"delivery_fee"`
	ServiceFee     float64         `json:"service_fee"`
	Total          float64         `json:"total"`
}

// ItemCount returns the sum of line-item quantities, not the number of lines.
func (s CartState) ItemCount() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no line items.
func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}
