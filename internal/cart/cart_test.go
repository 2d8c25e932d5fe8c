package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeMule/gebeta-client/internal/models"
)

func newTestStore() *Store {
	return NewStore(&models.Config{ServiceFeeRate: 0.05})
}

func menuItem(id, name string, price float64, restaurantID string) models.MenuItem {
	return models.MenuItem{
		ID:           id,
		Name:         name,
		Price:        price,
		RestaurantID: restaurantID,
		Available:    true,
	}
}

func TestAddItem_AccumulatesSubtotal(t *testing.T) {
	s := newTestStore()

	s.AddItem(menuItem("a", "Doro Wat", 120, "r9"), "Mama's Kitchen", 2, "")
	state := s.AddItem(menuItem("b", "Shiro", 80, "r9"), "Mama's Kitchen", 1, "")

	assert.Equal(t, "r9", state.RestaurantID)
	assert.Equal(t, "Mama's Kitchen", state.RestaurantName)
	assert.Len(t, state.Items, 2)
	assert.Equal(t, 320.0, state.Subtotal)
	assert.Equal(t, 16.0, state.ServiceFee)
	assert.Equal(t, 336.0, state.Total)
}

func TestAddItem_MergesQuantities(t *testing.T) {
	s := newTestStore()

	s.AddItem(menuItem("a", "Tibs", 150, "r1"), "Addis Grill", 1, "no onions")
	state := s.AddItem(menuItem("a", "Tibs", 150, "r1"), "Addis Grill", 2, "")

	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	// Empty notes on the re-add keep the existing notes.
	assert.Equal(t, "no onions", state.Items[0].Notes)

	state = s.AddItem(menuItem("a", "Tibs", 150, "r1"), "Addis Grill", 1, "extra spicy")
	assert.Equal(t, 4, state.Items[0].Quantity)
	assert.Equal(t, "extra spicy", state.Items[0].Notes)
}

func TestAddItem_CrossRestaurantIsNoOp(t *testing.T) {
	s := newTestStore()

	before := s.AddItem(menuItem("a", "Pad Thai", 200, "r1"), "Thai Corner", 1, "")
	after := s.AddItem(menuItem("b", "Sushi Roll", 300, "r2"), "Tokyo Bites", 1, "")

	assert.Equal(t, before, after)
	assert.Len(t, after.Items, 1)
	assert.Equal(t, "r1", after.RestaurantID)
	assert.Equal(t, "Thai Corner", after.RestaurantName)
}

func TestRemoveItem_LastItemFullyResets(t *testing.T) {
	s := newTestStore()

	s.AddItem(menuItem("a", "Burrito", 90, "r1"), "Casa", 1, "")
	s.SetDeliveryOption(models.DeliveryOption{ID: "d1", Name: "Standard", Price: 250})
	state := s.RemoveItem("a")

	assert.Equal(t, models.CartState{}, state)
	assert.Nil(t, state.DeliveryOption)
}

func TestRemoveItem_KeepsDeliveryFeeWhenItemsRemain(t *testing.T) {
	s := newTestStore()

	s.AddItem(menuItem("a", "Gyros", 100, "r1"), "Olympus", 1, "")
	s.AddItem(menuItem("b", "Moussaka", 180, "r1"), "Olympus", 1, "")
	s.SetDeliveryOption(models.DeliveryOption{ID: "d1", Name: "Standard", Price: 250})

	state := s.RemoveItem("a")
	require.Len(t, state.Items, 1)
	assert.Equal(t, 180.0, state.Subtotal)
	assert.Equal(t, 250.0, state.DeliveryFee)
	assert.Equal(t, 9.0, state.ServiceFee)
	assert.Equal(t, 439.0, state.Total)
}

func TestRemoveItem_UnknownIDIsNoOp(t *testing.T) {
	s := newTestStore()

	before := s.AddItem(menuItem("a", "Ramen", 130, "r1"), "Noodle Bar", 2, "")
	after := s.RemoveItem("nope")

	assert.Equal(t, before, after)
}

func TestUpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	for _, quantity := range []int{0, -1, -10} {
		s := newTestStore()
		s.AddItem(menuItem("a", "Falafel", 70, "r1"), "Levant", 1, "")
		s.AddItem(menuItem("b", "Hummus", 50, "r1"), "Levant", 1, "")

		state := s.UpdateQuantity("a", quantity)

		r := newTestStore()
		r.AddItem(menuItem("a", "Falafel", 70, "r1"), "Levant", 1, "")
		r.AddItem(menuItem("b", "Hummus", 50, "r1"), "Levant", 1, "")
		expected := r.RemoveItem("a")

		assert.Equal(t, expected, state, "quantity %d", quantity)
	}
}

func TestUpdateQuantity_Recomputes(t *testing.T) {
	s := newTestStore()

	s.AddItem(menuItem("a", "Lasagna", 200, "r1"), "Trattoria", 1, "")
	state := s.UpdateQuantity("a", 4)

	assert.Equal(t, 800.0, state.Subtotal)
	assert.Equal(t, 40.0, state.ServiceFee)
	assert.Equal(t, 840.0, state.Total)
}

func TestUpdateNotes_DoesNotTouchTotals(t *testing.T) {
	s := newTestStore()

	before := s.AddItem(menuItem("a", "Tacos", 85, "r1"), "Cantina", 2, "")
	after := s.UpdateNotes("a", "salsa on the side")

	assert.Equal(t, "salsa on the side", after.Items[0].Notes)
	assert.Equal(t, before.Subtotal, after.Subtotal)
	assert.Equal(t, before.ServiceFee, after.ServiceFee)
	assert.Equal(t, before.Total, after.Total)
}

func TestSetDeliveryOption_Reprices(t *testing.T) {
	s := newTestStore()

	s.AddItem(menuItem("a", "Biryani", 300, "r1"), "Spice Route", 1, "")
	state := s.SetDeliveryOption(models.DeliveryOption{ID: "d1", Name: "Standard", Price: 345, EstimatedTime: "30-40 min"})

	assert.Equal(t, 345.0, state.DeliveryFee)
	assert.Equal(t, 300.0+345.0+15.0, state.Total)
}

func TestClear(t *testing.T) {
	s := newTestStore()

	s.AddItem(menuItem("a", "Dumplings", 110, "r1"), "Jade Palace", 3, "")
	s.SetDeliveryOption(models.DeliveryOption{ID: "d1", Price: 250})

	assert.Equal(t, models.CartState{}, s.Clear())
	assert.Equal(t, 0, s.ItemCount())
}

func TestItemCount_SumsQuantities(t *testing.T) {
	s := newTestStore()

	s.AddItem(menuItem("a", "Kitfo", 160, "r1"), "Habesha", 2, "")
	s.AddItem(menuItem("b", "Sambusa", 30, "r1"), "Habesha", 5, "")

	assert.Equal(t, 7, s.ItemCount())
	assert.Len(t, s.State().Items, 2)
}

func TestSnapshotIsolation(t *testing.T) {
	s := newTestStore()

	state := s.AddItem(menuItem("a", "Pho", 140, "r1"), "Hanoi House", 1, "")
	state.Items[0].Quantity = 99
	if state.DeliveryOption != nil {
		state.DeliveryOption.Price = -1
	}

	assert.Equal(t, 1, s.State().Items[0].Quantity)
}

// The worked end-to-end ordering flow: merge, guard, delivery, reset.
func TestOrderDraftScenario(t *testing.T) {
	s := newTestStore()

	state := s.AddItem(menuItem("1", "Item A", 100, "9"), "Restaurant Nine", 1, "")
	assert.Equal(t, 100.0, state.Subtotal)
	assert.Equal(t, 5.0, state.ServiceFee)
	assert.Equal(t, 105.0, state.Total)

	state = s.AddItem(menuItem("1", "Item A", 100, "9"), "Restaurant Nine", 2, "")
	require.Len(t, state.Items, 1)
	assert.Equal(t, 3, state.Items[0].Quantity)
	assert.Equal(t, 300.0, state.Subtotal)
	assert.Equal(t, 15.0, state.ServiceFee)
	assert.Equal(t, 315.0, state.Total)

	before := state
	state = s.AddItem(menuItem("2", "Item B", 50, "10"), "Restaurant Ten", 1, "")
	assert.Equal(t, before, state)

	state = s.SetDeliveryOption(models.DeliveryOption{ID: "d", Name: "Standard", Price: 345})
	assert.Equal(t, 345.0, state.DeliveryFee)
	assert.Equal(t, 660.0, state.Total)

	state = s.RemoveItem("1")
	assert.Equal(t, models.CartState{}, state)
}
