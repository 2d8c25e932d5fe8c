package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionStateString(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "disconnected", StateDisconnected.String())
	assert.Equal(t, "unknown", ConnectionState(99).String())
}

func TestAuthPayloadHasIdentity(t *testing.T) {
	assert.False(t, AuthPayload{Type: MessageTypeAuthenticate}.HasIdentity())
	assert.True(t, AuthPayload{UserID: "u1"}.HasIdentity())
	assert.True(t, AuthPayload{UserType: "restaurant"}.HasIdentity())
	assert.True(t, AuthPayload{RestaurantID: "r1"}.HasIdentity())
}

func TestCartStateItemCount(t *testing.T) {
	state := CartState{Items: []CartItem{
		{ID: "a", Quantity: 2},
		{ID: "b", Quantity: 5},
	}}
	assert.Equal(t, 7, state.ItemCount())
	assert.False(t, state.IsEmpty())
	assert.True(t, CartState{}.IsEmpty())
	assert.Equal(t, 0, CartState{}.ItemCount())
}
