package utils

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// RememberedCredentials represents the stored credentials for "Remember Me"
type RememberedCredentials struct {
	Email     string    `json:"email"`
	UserType  string    `json:"userType"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

const rememberMeTTL = 30 * 24 * time.Hour

// GenerateRememberMeToken generates a secure token for "Remember Me"
func GenerateRememberMeToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func encryptionKey() []byte {
	key := os.Getenv("REMEMBER_ME_ENCRYPTION_KEY")
	if len(key) < 32 {
		key = key + "00000000000000000000000000000000"
	}
	return []byte(key[:32])
}

func encryptCredentials(credentials RememberedCredentials) (string, error) {
	jsonData, err := json.Marshal(credentials)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(encryptionKey())
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, jsonData, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func decryptCredentials(encrypted string) (RememberedCredentials, error) {
	var credentials RememberedCredentials

	data, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return credentials, err
	}

	block, err := aes.NewCipher(encryptionKey())
	if err != nil {
		return credentials, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return credentials, err
	}

	if len(data) < gcm.NonceSize() {
		return credentials, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	jsonData, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return credentials, err
	}

	err = json.Unmarshal(jsonData, &credentials)
	return credentials, err
}

// StoreRememberedCredentials encrypts and stores credentials in Redis keyed
// by the remember-me token.
func StoreRememberedCredentials(ctx context.Context, client *redis.Client, token string, credentials RememberedCredentials) error {
	if client == nil {
		return fmt.Errorf("remember me is unavailable: redis not connected")
	}

	credentials.ExpiresAt = time.Now().Add(rememberMeTTL)
	encrypted, err := encryptCredentials(credentials)
	if err != nil {
		return err
	}

	return client.Set(ctx, "remember_me:"+token, encrypted, rememberMeTTL).Err()
}

// GetRememberedCredentials retrieves and decrypts credentials for a token.
func GetRememberedCredentials(ctx context.Context, client *redis.Client, token string) (RememberedCredentials, error) {
	var credentials RememberedCredentials
	if client == nil {
		return credentials, fmt.Errorf("remember me is unavailable: redis not connected")
	}

	encrypted, err := client.Get(ctx, "remember_me:"+token).Result()
	if err != nil {
		return credentials, err
	}

	credentials, err = decryptCredentials(encrypted)
	if err != nil {
		return credentials, err
	}

	if time.Now().After(credentials.ExpiresAt) {
		client.Del(ctx, "remember_me:"+token)
		return credentials, fmt.Errorf("remembered credentials expired")
	}

	return credentials, nil
}

// DeleteRememberMeToken removes the stored credentials on logout.
func DeleteRememberMeToken(ctx context.Context, client *redis.Client, token string) {
	if client == nil {
		return
	}
	client.Del(ctx, "remember_me:"+token)
}
