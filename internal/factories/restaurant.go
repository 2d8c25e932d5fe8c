// Package factories generates demo restaurants and menus for the session
// simulator and for tests, so the client core can be exercised without a live
// backend.
package factories

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/mikeMule/gebeta-client/internal/models"
)

var fake = faker.New()

type RestaurantFactory struct {
	slugCache sync.Map // to track used slugs
}

func (rf *RestaurantFactory) CreateRestaurant(rng *rand.Rand) *models.Restaurant {
	// Spread restaurants around Addis Ababa within roughly a city radius.
	const cityLat, cityLng, radiusDeg = 9.0054, 38.7636, 0.12

	name := fake.Company().Name()

	return &models.Restaurant{
		ID:       cuid.New(),
		Name:     name,
		Phone:    fake.Phone().Number(),
		Town:     fake.Address().City(),
		SlugName: rf.createUniqueSlug(name),
		LogoURL:  fake.Internet().URL(),
		Location: models.Location{
			Lat: cityLat + (rng.Float64()*2-1)*radiusDeg,
			Lng: cityLng + (rng.Float64()*2-1)*radiusDeg,
		},
		Cuisines:     randomCuisines(rng),
		Rating:       fake.Float64(1, 1, 5),
		TotalRatings: fake.Float64(0, 0, 1000),
		AvgPrepTime:  fake.Float64(0, 15, 45),
		IsOpen:       true,
	}
}

func (rf *RestaurantFactory) createUniqueSlug(name string) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, base)

	slug := base
	counter := 1

	for {
		if _, exists := rf.slugCache.LoadOrStore(slug, true); !exists {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
		counter++
	}
}

func randomCuisines(rng *rand.Rand) []string {
	allCuisines := []string{"Italian", "Cafe", "Indian", "American", "European", "Japanese", "Mexican", "Contemporary", "Continental", "Chinese", "Thai", "Vietnamese", "Greek", "French", "Mediterranean", "Fast Food", "Street Food", "Homemade"}
	cuisineCount := rng.Intn(4) + 1 // 1 to 4 cuisines
	cuisines := make([]string, cuisineCount)
	for i := 0; i < cuisineCount; i++ {
		cuisines[i] = allCuisines[rng.Intn(len(allCuisines))]
	}
	return cuisines
}
