// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID                  primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Email               string               `json:"email" bson:"email"`
	Password            string               `json:"password,omitempty" bson:"password"`
	FullName            string               `json:"fullName" bson:"fullName"`
	UserType            string               `json:"userType" bson:"userType"` // "user", "admin", "super_admin"
	Phone               string               `json:"phone,omitempty" bson:"phone,omitempty"`
	IsActive            bool                 `json:"isActive" bson:"isActive"`
	IsBanned            bool                 `json:"isBanned" bson:"isBanned"`
	BanReason           string               `json:"banReason,omitempty" bson:"banReason,omitempty"`
	ProfilePic          string               `json:"profilePic,omitempty" bson:"profilePic,omitempty"`
	FavoriteListings    []primitive.ObjectID `json:"favoriteListings,omitempty" bson:"favoriteListings,omitempty"`
	GoogleID            string               `json:"googleId,omitempty" bson:"googleId,omitempty"`
	GoogleEmail         string               `json:"googleEmail,omitempty" bson:"googleEmail,omitempty"`
	FCMToken            string               `json:"fcmToken,omitempty" bson:"fcmToken,omitempty"`
	OTPInfo             *OTPInfo             `json:"otpInfo,omitempty" bson:"otpInfo,omitempty"`
	ResetPasswordToken  string               `json:"resetPasswordToken,omitempty" bson:"resetPasswordToken,omitempty"`
	ResetTokenExpiresAt time.Time            `json:"resetTokenExpiresAt,omitempty" bson:"resetTokenExpiresAt,omitempty"`
	LastActivityAt      time.Time            `json:"lastActivityAt" bson:"lastActivityAt"`
	CreatedAt           time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt" bson:"updatedAt"`
}

type OTPInfo struct {
	OTP       string    `json:"otp" bson:"otp"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	FCMToken string `json:"fcmToken,omitempty"`
}
