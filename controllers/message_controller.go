package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/souqna/souqna_backend/models"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/utils"
	"github.com/souqna/souqna_backend/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageController struct {
	DB          *mongo.Database
	ListingRepo *repositories.ListingRepository
	Hub         *websocket.Hub
}

func NewMessageController(db *mongo.Database, listingRepo *repositories.ListingRepository, hub *websocket.Hub) *MessageController {
	return &MessageController{
		DB:          db,
		ListingRepo: listingRepo,
		Hub:         hub,
	}
}

// SendMessage starts (or continues) the conversation between the caller and
// a listing's seller. One conversation exists per (listing, buyer) pair.
func (mc *MessageController) SendMessage(c echo.Context) error {
	senderID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Listing ID and text are required",
		})
	}

	listingID, err := primitive.ObjectIDFromHex(req.ListingID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	ctx := c.Request().Context()
	listing, err := mc.ListingRepo.Get(ctx, listingID)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Listing not found",
		})
	}

	if listing.UserID == senderID {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "You cannot message your own listing",
		})
	}

	conversation, err := mc.findOrCreateConversation(ctx, listing, senderID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to open conversation",
		})
	}

	message, err := mc.persistMessage(ctx, conversation, senderID, req.Text)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to send message",
		})
	}

	mc.deliver(conversation, message)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Message sent successfully",
		Data: map[string]interface{}{
			"conversation": conversation,
			"message":      message,
		},
	})
}

// SendConversationMessage appends a message to an existing conversation.
// Either participant can use it; the seller replies through here.
func (mc *MessageController) SendConversationMessage(c echo.Context) error {
	senderID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	conversation, errResp := mc.participantConversation(c, senderID)
	if errResp != nil {
		return errResp
	}

	var req struct {
		Text string `json:"text" validate:"required"`
	}
	if err := c.Bind(&req); err != nil || req.Text == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Text is required",
		})
	}

	message, err := mc.persistMessage(c.Request().Context(), conversation, senderID, req.Text)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to send message",
		})
	}

	mc.deliver(conversation, message)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Message sent successfully",
		Data:    message,
	})
}

// GetConversations lists the caller's conversations, most recent first, with
// an unread count per conversation
func (mc *MessageController) GetConversations(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	ctx := c.Request().Context()
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})
	cursor, err := mc.DB.Collection("conversations").Find(ctx, bson.M{
		"$or": []bson.M{
			{"buyerId": userID},
			{"sellerId": userID},
		},
	}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load conversations",
		})
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load conversations",
		})
	}

	type conversationWithUnread struct {
		models.Conversation
		UnreadCount int64 `json:"unreadCount"`
	}

	result := make([]conversationWithUnread, 0, len(conversations))
	for _, conversation := range conversations {
		unread, err := mc.DB.Collection("messages").CountDocuments(ctx, bson.M{
			"conversationId": conversation.ID,
			"senderId":       bson.M{"$ne": userID},
			"isRead":         false,
		})
		if err != nil {
			log.Printf("Failed to count unread messages in %s: %v", conversation.ID.Hex(), err)
		}
		result = append(result, conversationWithUnread{Conversation: conversation, UnreadCount: unread})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Conversations retrieved successfully",
		Data:    result,
	})
}

// GetMessages returns a conversation's messages oldest first and marks the
// caller's incoming messages as read
func (mc *MessageController) GetMessages(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	conversation, errResp := mc.participantConversation(c, userID)
	if errResp != nil {
		return errResp
	}

	ctx := c.Request().Context()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := mc.DB.Collection("messages").Find(ctx, bson.M{"conversationId": conversation.ID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load messages",
		})
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load messages",
		})
	}

	_, err = mc.DB.Collection("messages").UpdateMany(ctx, bson.M{
		"conversationId": conversation.ID,
		"senderId":       bson.M{"$ne": userID},
		"isRead":         false,
	}, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		log.Printf("Failed to mark messages read in %s: %v", conversation.ID.Hex(), err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Messages retrieved successfully",
		Data:    messages,
	})
}

// findOrCreateConversation relies on the unique (listingId, buyerId) index:
// a concurrent create loses the race, gets a duplicate-key error and falls
// back to reading the winner's document.
func (mc *MessageController) findOrCreateConversation(ctx context.Context, listing *models.Listing, buyerID primitive.ObjectID) (*models.Conversation, error) {
	collection := mc.DB.Collection("conversations")
	filter := bson.M{"listingId": listing.ID, "buyerId": buyerID}

	var conversation models.Conversation
	err := collection.FindOne(ctx, filter).Decode(&conversation)
	if err == nil {
		return &conversation, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	conversation = models.Conversation{
		ListingID:     listing.ID,
		ListingTitle:  listing.Title,
		BuyerID:       buyerID,
		SellerID:      listing.UserID,
		LastMessageAt: now,
		CreatedAt:     now,
	}

	result, err := collection.InsertOne(ctx, conversation)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if err := collection.FindOne(ctx, filter).Decode(&conversation); err != nil {
				return nil, err
			}
			return &conversation, nil
		}
		return nil, err
	}

	conversation.ID = result.InsertedID.(primitive.ObjectID)
	return &conversation, nil
}

func (mc *MessageController) persistMessage(ctx context.Context, conversation *models.Conversation, senderID primitive.ObjectID, text string) (*models.Message, error) {
	now := time.Now()
	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Text:           utils.SanitizeInput(text),
		CreatedAt:      now,
	}

	result, err := mc.DB.Collection("messages").InsertOne(ctx, message)
	if err != nil {
		return nil, err
	}
	message.ID = result.InsertedID.(primitive.ObjectID)

	_, err = mc.DB.Collection("conversations").UpdateOne(ctx, bson.M{"_id": conversation.ID}, bson.M{
		"$set": bson.M{"lastMessage": message.Text, "lastMessageAt": now},
	})
	if err != nil {
		log.Printf("Failed to update conversation %s: %v", conversation.ID.Hex(), err)
	}

	conversation.LastMessage = message.Text
	conversation.LastMessageAt = now
	return &message, nil
}

// deliver pushes the message to the counterpart over the hub when connected,
// otherwise falls back to an FCM push
func (mc *MessageController) deliver(conversation *models.Conversation, message *models.Message) {
	recipientID := conversation.BuyerID
	if message.SenderID == conversation.BuyerID {
		recipientID = conversation.SellerID
	}

	if err := mc.Hub.NotifyNewMessage(recipientID, message); err != nil {
		utils.SendPushNotification(mc.DB, recipientID, "New message", message.Text, map[string]string{
			"type":           websocket.NotificationTypeNewMessage,
			"conversationId": conversation.ID.Hex(),
		})
	}

	if err := utils.SaveNotification(mc.DB, recipientID, "New message", message.Text, websocket.NotificationTypeNewMessage, map[string]string{
		"conversationId": conversation.ID.Hex(),
	}); err != nil {
		log.Printf("Failed to save notification: %v", err)
	}
}

// participantConversation loads the conversation from the path parameter and
// checks the caller is one of its two participants
func (mc *MessageController) participantConversation(c echo.Context, userID primitive.ObjectID) (*models.Conversation, error) {
	conversationID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid conversation ID",
		})
	}

	var conversation models.Conversation
	err = mc.DB.Collection("conversations").FindOne(c.Request().Context(), bson.M{"_id": conversationID}).Decode(&conversation)
	if err != nil {
		return nil, c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Conversation not found",
		})
	}

	if conversation.BuyerID != userID && conversation.SellerID != userID {
		return nil, c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "You are not part of this conversation",
		})
	}

	return &conversation, nil
}
