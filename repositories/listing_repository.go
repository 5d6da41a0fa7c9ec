package repositories

import (
	"context"
	"time"

	"github.com/souqna/souqna_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListingRepository stores listings with their denormalized taxonomy
// snapshots. Filters hit the same snapshot fields the referential guard
// queries.
type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection("listings"),
	}
}

func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	result, err := r.collection.InsertOne(ctx, listing)
	if err != nil {
		return err
	}
	listing.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ListingRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	var listing models.Listing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// Find returns approved listings matching the filter, newest first, plus the
// total match count for pagination.
func (r *ListingRepository) Find(ctx context.Context, filter models.ListingFilter) ([]models.Listing, int64, error) {
	query := bson.M{"status": models.ListingStatusApproved}

	if filter.CategoryID != "" {
		query["category.id"] = filter.CategoryID
	}
	if filter.SubcategoryID != "" {
		query["subcategory.id"] = filter.SubcategoryID
	}
	if filter.CountryID != "" {
		query["locationCountry.id"] = filter.CountryID
	}
	if filter.GovernorateID != "" {
		query["locationGovernorate.id"] = filter.GovernorateID
	}
	if filter.DistrictID != "" {
		query["locationDistrict.id"] = filter.DistrictID
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = []bson.M{
			{"title": regex},
			{"description": regex},
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * pageSize).
		SetLimit(pageSize)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// FindByUser returns a user's own listings in every status
func (r *ListingRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// FindByStatus returns listings in one moderation status, oldest first so
// the admin queue is processed in order of submission.
func (r *ListingRepository) FindByStatus(ctx context.Context, status string) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// FindApprovedExcept returns up to limit approved listings other than the
// given one. Used as the candidate pool for recommendations.
func (r *ListingRepository) FindApprovedExcept(ctx context.Context, exclude primitive.ObjectID, limit int64) ([]models.Listing, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{
		"status": models.ListingStatusApproved,
		"_id":    bson.M{"$ne": exclude},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *ListingRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	set["updatedAt"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementViews bumps the view counter without touching updatedAt
func (r *ListingRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}
