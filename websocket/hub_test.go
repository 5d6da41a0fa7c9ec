package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func hasUnauthenticated(h *Hub, client *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.unauthenticatedClients[client]
	return ok
}

func clientFor(h *Hub, userID primitive.ObjectID) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[userID]
}

func TestHubRegistersUnauthenticatedClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{}
	h.register <- client

	assert.Eventually(t, func() bool {
		return hasUnauthenticated(h, client)
	}, time.Second, 10*time.Millisecond)
}

func TestHubRegistersAuthenticatedClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	userID := primitive.NewObjectID()
	client := &Client{UserID: userID, Authenticated: true}
	h.register <- client

	assert.Eventually(t, func() bool {
		return clientFor(h, userID) == client
	}, time.Second, 10*time.Millisecond)
}

func TestAuthenticateClientPromotes(t *testing.T) {
	h := NewHub()
	client := &Client{}
	h.unauthenticatedClients[client] = true

	userID := primitive.NewObjectID()
	require.NoError(t, h.AuthenticateClient(client, userID))

	assert.True(t, client.Authenticated)
	assert.Equal(t, userID, client.UserID)
	assert.Same(t, client, clientFor(h, userID))
	assert.False(t, hasUnauthenticated(h, client))
}

func TestSendToUserNotConnected(t *testing.T) {
	h := NewHub()

	err := h.SendToUser(primitive.NewObjectID(), Notification{Type: NotificationTypeNewMessage})
	assert.Error(t, err)
}
