package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/souqna/souqna_backend/models"
	"github.com/souqna/souqna_backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CategoryRepository edits the category tree: top-level category documents
// with an embedded, ordered subcategories array.
type CategoryRepository struct {
	collection *mongo.Collection
	guard      *ReferentialGuard
}

func NewCategoryRepository(db *mongo.Database, guard *ReferentialGuard) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
		guard:      guard,
	}
}

// List returns all categories in display order.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}

	models.SortCategoriesForDisplay(categories)
	return categories, nil
}

// Get returns a single category document.
func (r *CategoryRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// AddCategory creates a category with order max(existing)+1, or 0 when the
// collection is empty. The id is store-assigned.
func (r *CategoryRepository) AddCategory(ctx context.Context, name, iconName string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrValidation
	}

	existing, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	order := models.NextCategoryOrder(existing)

	now := time.Now()
	category := models.Category{
		Name:          name,
		IconName:      iconName,
		Order:         &order,
		Subcategories: []models.Subcategory{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return nil, err
	}

	category.ID = result.InsertedID.(primitive.ObjectID)
	return &category, nil
}

// AddSubcategory appends a subcategory whose id is the slug of its name.
// A duplicate slug within the same parent is rejected.
func (r *CategoryRepository) AddSubcategory(ctx context.Context, parentID primitive.ObjectID, name, iconName string) (*models.Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrValidation
	}

	slug := utils.Slugify(name)
	if slug == "" {
		return nil, models.ErrInvalidSlug
	}

	parent, err := r.Get(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.HasSubcategory(slug) {
		return nil, models.ErrAlreadyExists
	}

	subcategory := models.Subcategory{
		ID:       slug,
		Name:     name,
		IconName: iconName,
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": parentID},
		bson.M{
			"$addToSet": bson.M{"subcategories": subcategory},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return nil, err
	}
	return &subcategory, nil
}

// MoveCategory swaps the order values of the category at index (in display
// order) with its neighbor in the given direction. Both documents are
// written inside one transaction so the swap cannot partially apply. A move
// at either boundary is a no-op.
func (r *CategoryRepository) MoveCategory(ctx context.Context, index int, direction string) error {
	categories, err := r.List(ctx)
	if err != nil {
		return err
	}

	neighbor, ok := models.NeighborIndex(len(categories), index, direction)
	if !ok {
		return nil
	}

	a, b := categories[index], categories[neighbor]

	session, err := r.collection.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.collection.UpdateOne(sc, bson.M{"_id": a.ID}, orderUpdate(b.Order)); err != nil {
			return nil, err
		}
		if _, err := r.collection.UpdateOne(sc, bson.M{"_id": b.ID}, orderUpdate(a.Order)); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// orderUpdate builds the order write for one side of a swap. A nil order is
// removed from the document so it keeps sorting after all ordered nodes.
func orderUpdate(order *int) bson.M {
	if order == nil {
		return bson.M{
			"$unset": bson.M{"order": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		}
	}
	return bson.M{
		"$set": bson.M{"order": *order, "updatedAt": time.Now()},
	}
}

// DeleteCategory removes a category and its embedded subcategories, unless
// any listing still references the category or one of its subcategories.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	category, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	associated, err := r.guard.IsAssociated(ctx, "category.id", category.DescendantIDs())
	if err != nil {
		return err
	}
	if associated {
		return &models.DeletionBlockedError{Name: category.Name}
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// DeleteSubcategory removes the exact subcategory record (matched
// structurally, not just by id) from the parent's array.
func (r *CategoryRepository) DeleteSubcategory(ctx context.Context, parentID primitive.ObjectID, subcategory models.Subcategory) error {
	associated, err := r.guard.IsAssociated(ctx, "subcategory.id", []string{subcategory.ID})
	if err != nil {
		return err
	}
	if associated {
		return &models.DeletionBlockedError{Name: subcategory.Name}
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": parentID},
		bson.M{
			"$pull": bson.M{"subcategories": subcategory},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
