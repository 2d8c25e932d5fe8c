package session

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/mikeMule/gebeta-client/internal/factories"
	"github.com/mikeMule/gebeta-client/internal/models"
	"github.com/mikeMule/gebeta-client/internal/pricing"
)

// Simulator replays a synthetic ordering session against a real Session:
// random cart actions, delivery selection, checkouts and a loopback
// notification feed. Every step re-verifies the cart's pricing invariants, so
// a run doubles as an end-to-end exercise of the client core.
type Simulator struct {
	Config      *models.Config
	Session     *Session
	Restaurants []*models.Restaurant
	Menus       map[string][]models.MenuItem
	Rng         *rand.Rand

	loop         *LoopbackDialer
	sink         OutputDestination
	log          logrus.FieldLogger
	schedule     pricing.FeeSchedule
	userLocation models.Location
	seq          int
	ordersPlaced int
}

// NewSimulator builds a simulator and its backing session from configuration.
func NewSimulator(cfg *models.Config, log logrus.FieldLogger) (*Simulator, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	sink, err := OutputForConfig(cfg)
	if err != nil {
		return nil, err
	}

	loop := NewLoopbackDialer()
	sess := NewSession(cfg,
		WithLogger(log),
		WithSink(sink),
		WithDialer(loop),
	)

	return &Simulator{
		Config:       cfg,
		Session:      sess,
		Menus:        make(map[string][]models.MenuItem),
		Rng:          rand.New(rand.NewSource(int64(cfg.Seed))),
		loop:         loop,
		sink:         sink,
		log:          log,
		schedule:     pricing.ScheduleFromConfig(cfg),
		userLocation: models.Location{Lat: 9.0054, Lng: 38.7636},
	}, nil
}

func (s *Simulator) initializeData() {
	restaurantFactory := &factories.RestaurantFactory{}
	menuItemFactory := &factories.MenuItemFactory{}

	for i := 0; i < s.Config.InitialRestaurants; i++ {
		restaurant := restaurantFactory.CreateRestaurant(s.Rng)
		s.Restaurants = append(s.Restaurants, restaurant)
		for j := 0; j < s.Config.ItemsPerRestaurant; j++ {
			item := menuItemFactory.CreateMenuItem(restaurant, s.Rng)
			s.Menus[restaurant.ID] = append(s.Menus[restaurant.ID], item)
		}
	}
}

// Run executes the configured number of session events.
func (s *Simulator) Run(ctx context.Context) error {
	s.initializeData()
	s.Session.Start(ctx)
	defer s.Session.Close()

	bar := progressbar.Default(int64(s.Config.SimEvents), "simulating session")
	for i := 0; i < s.Config.SimEvents; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.step()
		if err := s.checkInvariants(); err != nil {
			return err
		}
		_ = bar.Add(1)
	}

	// Give the loopback feed a moment to drain into the channel.
	time.Sleep(100 * time.Millisecond)

	s.log.WithFields(logrus.Fields{
		"orders_placed":   s.ordersPlaced,
		"notifications":   len(s.Session.Channel.Notifications()),
		"channel_state":   s.Session.Channel.State().String(),
		"cart_item_count": s.Session.Cart.ItemCount(),
	}).Info("session simulation finished")
	return nil
}

type cartEvent struct {
	Seq    int              `json:"seq"`
	Action string           `json:"action"`
	State  models.CartState `json:"state"`
}

func (s *Simulator) step() {
	s.seq++
	state := s.Session.Cart.State()

	choice := s.Rng.Float64()
	switch {
	case state.IsEmpty() || choice < 0.45:
		s.addRandomItem(state)
	case choice < 0.55:
		item := s.randomCartItem(state)
		s.Session.Cart.UpdateQuantity(item.ID, s.Rng.Intn(5)) // 0 removes
		s.record("update_quantity")
	case choice < 0.62:
		item := s.randomCartItem(state)
		s.Session.Cart.UpdateNotes(item.ID, fakeNote(s.Rng))
		s.record("update_notes")
	case choice < 0.75:
		s.selectDelivery(state)
	case choice < 0.85:
		item := s.randomCartItem(state)
		s.Session.Cart.RemoveItem(item.ID)
		s.record("remove_item")
	default:
		s.checkout()
	}
}

func (s *Simulator) addRandomItem(state models.CartState) {
	restaurant := s.Restaurants[s.Rng.Intn(len(s.Restaurants))]
	if !state.IsEmpty() && s.Rng.Float64() < 0.8 {
		// Usually keep ordering from the cart's restaurant; the rest of the
		// time deliberately try another one to exercise the add guard.
		restaurant = s.restaurantByID(state.RestaurantID)
	}
	menu := s.Menus[restaurant.ID]
	item := menu[s.Rng.Intn(len(menu))]
	s.Session.Cart.AddItem(item, restaurant.Name, s.Rng.Intn(3)+1, "")
	s.record("add_item")
}

func (s *Simulator) selectDelivery(state models.CartState) {
	restaurant := s.restaurantByID(state.RestaurantID)
	if restaurant == nil {
		return
	}
	distance := pricing.Distance(s.userLocation, restaurant.Location)
	option := models.DeliveryOption{
		ID:            cuid.New(),
		Name:          "Standard delivery",
		Price:         s.schedule.Fee(distance),
		EstimatedTime: pricing.EstimateDeliveryTime(distance, s.Config.AvgDeliverySpeed),
	}
	s.Session.Cart.SetDeliveryOption(option)
	s.record("set_delivery_option")
}

func (s *Simulator) checkout() {
	event, ok := s.Session.Checkout()
	if !ok {
		return
	}
	s.ordersPlaced++
	s.record("checkout")

	// Feed the status updates the backend would push for this order.
	s.loop.Push(map[string]interface{}{
		"id":        cuid.New(),
		"type":      models.MessageTypeOrderUpdate,
		"title":     "Order Placed",
		"message":   fmt.Sprintf("Order %s has been received", event.OrderID),
		"timestamp": event.PlacedAt.Format(time.RFC3339),
	})
	s.loop.Push(map[string]interface{}{
		"id":      cuid.New(),
		"type":    models.MessageTypeOrderUpdate,
		"title":   "Order Update",
		"message": fmt.Sprintf("Order %s is being prepared", event.OrderID),
	})
}

func (s *Simulator) record(action string) {
	s.emitEvent(cartEvent{Seq: s.seq, Action: action, State: s.Session.Cart.State()})
}

func (s *Simulator) emitEvent(event cartEvent) {
	if s.sink == nil {
		return
	}
	s.Session.emit(models.TopicCartEvents, event)
}

func (s *Simulator) restaurantByID(id string) *models.Restaurant {
	for _, r := range s.Restaurants {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *Simulator) randomCartItem(state models.CartState) models.CartItem {
	if state.IsEmpty() {
		return models.CartItem{}
	}
	return state.Items[s.Rng.Intn(len(state.Items))]
}

// checkInvariants re-derives the cart totals from the line items and fails
// the run on any drift.
func (s *Simulator) checkInvariants() error {
	state := s.Session.Cart.State()

	subtotal := 0.0
	for _, item := range state.Items {
		if item.RestaurantID != state.RestaurantID {
			return fmt.Errorf("cart holds item %s from restaurant %s, cart restaurant is %s",
				item.ID, item.RestaurantID, state.RestaurantID)
		}
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	if state.IsEmpty() && (state.RestaurantID != "" || state.DeliveryOption != nil) {
		return fmt.Errorf("empty cart retains restaurant %q or delivery option", state.RestaurantID)
	}

	serviceFee := math.Round(subtotal * s.Config.ServiceFeeRate)
	deliveryFee := 0.0
	if state.DeliveryOption != nil {
		deliveryFee = state.DeliveryOption.Price
	}
	total := subtotal + deliveryFee + serviceFee

	const eps = 1e-6
	if math.Abs(state.Subtotal-subtotal) > eps ||
		math.Abs(state.ServiceFee-serviceFee) > eps ||
		math.Abs(state.Total-total) > eps {
		return fmt.Errorf("cart totals drifted: got subtotal=%.2f fee=%.2f total=%.2f, want %.2f/%.2f/%.2f",
			state.Subtotal, state.ServiceFee, state.Total, subtotal, serviceFee, total)
	}
	return nil
}

func fakeNote(rng *rand.Rand) string {
	notes := []string{"No onions", "Extra spicy", "Call on arrival", "Less salt", "", "Add cutlery"}
	return notes[rng.Intn(len(notes))]
}
