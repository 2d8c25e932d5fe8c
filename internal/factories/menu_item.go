package factories

import (
	"math/rand"

	"github.com/lucsky/cuid"

	"github.com/mikeMule/gebeta-client/internal/models"
)

type MenuItemFactory struct{}

func (mf *MenuItemFactory) CreateMenuItem(restaurant *models.Restaurant, rng *rand.Rand) models.MenuItem {
	return models.MenuItem{
		ID:           cuid.New(),
		RestaurantID: restaurant.ID,
		Name:         randomMenuItemName(restaurant.Cuisines, rng),
		Description:  fake.Lorem().Sentence(10),
		Price:        fake.Float64(2, 5, 500),
		Category:     fake.Lorem().Word(),
		Available:    true,
	}
}

func randomMenuItemName(cuisines []string, rng *rand.Rand) string {
	items := map[string][]string{
		"Italian":       {"Margherita Pizza", "Spaghetti Carbonara", "Lasagna", "Tiramisu"},
		"Indian":        {"Chicken Tikka Masala", "Vegetable Curry", "Naan Bread", "Biryani"},
		"American":      {"Cheeseburger", "Hot Dog", "BBQ Ribs", "Apple Pie"},
		"Japanese":      {"Sushi Roll", "Ramen", "Tempura", "Miso Soup"},
		"Mexican":       {"Tacos", "Burrito", "Guacamole", "Quesadilla"},
		"Chinese":       {"Kung Pao Chicken", "Fried Rice", "Dumplings", "Mapo Tofu"},
		"Thai":          {"Pad Thai", "Green Curry", "Tom Yum Soup", "Mango Sticky Rice"},
		"Greek":         {"Gyros", "Greek Salad", "Moussaka", "Baklava"},
		"French":        {"Coq au Vin", "Beef Bourguignon", "Ratatouille", "Crème Brûlée"},
		"Mediterranean": {"Falafel", "Hummus", "Tabbouleh", "Grilled Halloumi"},
		"Street Food":   {"Shawarma", "Sambusa", "Kikil", "Chechebsa"},
		"Homemade":      {"Doro Wat", "Shiro", "Tibs", "Kitfo"},
	}
	cuisine := cuisines[rng.Intn(len(cuisines))]
	if names, ok := items[cuisine]; ok {
		return names[rng.Intn(len(names))]
	}
	return "Special of the Day"
}
