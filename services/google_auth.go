package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/lestrrat-go/jwx/jwk"
	"github.com/souqna/souqna_backend/config"
	"github.com/souqna/souqna_backend/middleware"
	"github.com/souqna/souqna_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const googleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"

// GoogleAuthService handles Google authentication
type GoogleAuthService struct {
	DB *mongo.Client
}

// GoogleUser represents the claims we keep from a verified Google ID token
type GoogleUser struct {
	GoogleID   string
	Email      string
	FullName   string
	PictureURL string
}

// NewGoogleAuthService creates a new Google auth service
func NewGoogleAuthService(db *mongo.Client) *GoogleAuthService {
	return &GoogleAuthService{
		DB: db,
	}
}

// AuthenticateIDToken verifies a Google ID token, finds or creates the user
// and issues backend tokens.
func (s *GoogleAuthService) AuthenticateIDToken(ctx context.Context, idToken, fcmToken string) (*models.LoginData, error) {
	googleUser, err := s.verifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify Google token: %w", err)
	}

	collection := config.GetCollection(s.DB, "users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"email": googleUser.Email}).Decode(&user)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("database error: %w", err)
		}

		// User doesn't exist, create new user
		now := time.Now()
		user = models.User{
			Email:       googleUser.Email,
			FullName:    googleUser.FullName,
			UserType:    "user",
			GoogleID:    googleUser.GoogleID,
			GoogleEmail: googleUser.Email,
			ProfilePic:  googleUser.PictureURL,
			FCMToken:    fcmToken,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		result, err := collection.InsertOne(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		user.ID = result.InsertedID.(primitive.ObjectID)
	} else {
		if user.IsBanned {
			return nil, errors.New("account is banned")
		}

		update := bson.M{
			"$set": bson.M{
				"googleId":    googleUser.GoogleID,
				"googleEmail": googleUser.Email,
				"fcmToken":    fcmToken,
				"updatedAt":   time.Now(),
			},
		}
		if _, err := collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	token, refreshToken, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.UserType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return &models.LoginData{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// verifyIDToken checks the token signature against Google's published keys
func (s *GoogleAuthService) verifyIDToken(ctx context.Context, idToken string) (*GoogleUser, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return nil, errors.New("invalid idToken format")
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errors.New("invalid JWT header")
	}
	var header struct {
		Kid string `json:"kid"`
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, errors.New("invalid JWT header JSON")
	}

	jwkSet, err := jwk.Fetch(ctx, googleCertsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google public keys: %w", err)
	}

	key, found := jwkSet.LookupKeyID(header.Kid)
	if !found {
		return nil, errors.New("Google public key not found")
	}

	var pubkey interface{}
	if err := key.Raw(&pubkey); err != nil {
		return nil, fmt.Errorf("failed to parse Google public key: %w", err)
	}

	parsedToken, err := jwt.Parse(idToken, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != header.Alg {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return pubkey, nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, errors.New("invalid or expired Google ID token")
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("failed to parse token claims")
	}

	googleID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	if googleID == "" || email == "" {
		return nil, errors.New("Google user ID or email not found in token")
	}

	return &GoogleUser{
		GoogleID:   googleID,
		Email:      email,
		FullName:   name,
		PictureURL: picture,
	}, nil
}
