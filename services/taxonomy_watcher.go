package services

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/utils"
	"github.com/souqna/souqna_backend/websocket"
	"go.mongodb.org/mongo-driver/mongo"
)

// TaxonomyWatcher follows the categories and locations collections with
// change streams. On every change it re-reads the full collection and pushes
// a snapshot to all connected WebSocket clients so the admin live view never
// needs to diff individual events.
type TaxonomyWatcher struct {
	db           *mongo.Database
	categoryRepo *repositories.CategoryRepository
	locationRepo *repositories.LocationRepository
	hub          *websocket.Hub
	redis        *redis.Client
}

func NewTaxonomyWatcher(db *mongo.Database, categoryRepo *repositories.CategoryRepository, locationRepo *repositories.LocationRepository, hub *websocket.Hub, redisClient *redis.Client) *TaxonomyWatcher {
	return &TaxonomyWatcher{
		db:           db,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		hub:          hub,
		redis:        redisClient,
	}
}

// Start launches one watch loop per collection. Loops run until ctx is
// cancelled and reconnect after transient stream errors.
func (w *TaxonomyWatcher) Start(ctx context.Context) {
	go w.watch(ctx, "categories", websocket.NotificationTypeCategorySnapshot, utils.CacheKeyCategories, w.categorySnapshot)
	go w.watch(ctx, "locations", websocket.NotificationTypeLocationSnapshot, utils.CacheKeyLocations, w.locationSnapshot)
}

func (w *TaxonomyWatcher) watch(ctx context.Context, collectionName, notificationType, cacheKey string, snapshot func(context.Context) (interface{}, error)) {
	for {
		if ctx.Err() != nil {
			return
		}

		stream, err := w.db.Collection(collectionName).Watch(ctx, mongo.Pipeline{})
		if err != nil {
			log.Printf("Failed to open change stream on %s: %v", collectionName, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		w.consume(ctx, stream, collectionName, notificationType, cacheKey, snapshot)
	}
}

func (w *TaxonomyWatcher) consume(ctx context.Context, stream *mongo.ChangeStream, collectionName, notificationType, cacheKey string, snapshot func(context.Context) (interface{}, error)) {
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		w.broadcast(ctx, collectionName, notificationType, cacheKey, snapshot)
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		log.Printf("Change stream on %s closed: %v", collectionName, err)
	}
}

func (w *TaxonomyWatcher) broadcast(ctx context.Context, collectionName, notificationType, cacheKey string, snapshot func(context.Context) (interface{}, error)) {
	readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	data, err := snapshot(readCtx)
	if err != nil {
		log.Printf("Failed to load %s snapshot: %v", collectionName, err)
		return
	}

	utils.InvalidateCache(readCtx, w.redis, cacheKey)

	w.hub.BroadcastToAll(websocket.Notification{
		Type: notificationType,
		Data: data,
	})
}

func (w *TaxonomyWatcher) categorySnapshot(ctx context.Context) (interface{}, error) {
	return w.categoryRepo.List(ctx)
}

func (w *TaxonomyWatcher) locationSnapshot(ctx context.Context) (interface{}, error) {
	return w.locationRepo.List(ctx)
}
