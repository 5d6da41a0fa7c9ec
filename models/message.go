// models/message.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation ties a buyer to a listing's seller. One conversation exists
// per (listing, buyer) pair.
type Conversation struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ListingID     primitive.ObjectID `json:"listingId" bson:"listingId"`
	ListingTitle  string             `json:"listingTitle" bson:"listingTitle"`
	BuyerID       primitive.ObjectID `json:"buyerId" bson:"buyerId"`
	SellerID      primitive.ObjectID `json:"sellerId" bson:"sellerId"`
	LastMessage   string             `json:"lastMessage,omitempty" bson:"lastMessage,omitempty"`
	LastMessageAt time.Time          `json:"lastMessageAt" bson:"lastMessageAt"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

type Message struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ConversationID primitive.ObjectID `json:"conversationId" bson:"conversationId"`
	SenderID       primitive.ObjectID `json:"senderId" bson:"senderId"`
	Text           string             `json:"text" bson:"text"`
	IsRead         bool               `json:"isRead" bson:"isRead"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

type SendMessageRequest struct {
	ListingID string `json:"listingId" validate:"required"`
	Text      string `json:"text" validate:"required"`
}
