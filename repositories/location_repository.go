package repositories

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/souqna/souqna_backend/models"
	"github.com/souqna/souqna_backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LocationRepository edits the location tree: country documents keyed by the
// slug of the country name, each embedding governorates which in turn embed
// districts. Districts sit two levels deep, so district writes rewrite the
// whole governorates array; the store's atomic append only reaches a
// document's top-level array fields.
type LocationRepository struct {
	collection *mongo.Collection
	guard      *ReferentialGuard
}

func NewLocationRepository(db *mongo.Database, guard *ReferentialGuard) *LocationRepository {
	return &LocationRepository{
		collection: db.Collection("locations"),
		guard:      guard,
	}
}

// List returns all countries sorted by name.
func (r *LocationRepository) List(ctx context.Context) ([]models.Country, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var countries []models.Country
	if err := cursor.All(ctx, &countries); err != nil {
		return nil, err
	}

	sort.Slice(countries, func(i, j int) bool {
		return strings.ToLower(countries[i].Name) < strings.ToLower(countries[j].Name)
	})
	return countries, nil
}

// Get returns a single country document by its slug key.
func (r *LocationRepository) Get(ctx context.Context, id string) (*models.Country, error) {
	var country models.Country
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&country)
	if err != nil {
		return nil, err
	}
	return &country, nil
}

// AddCountry creates a country keyed by the slug of its name. A name that
// slugifies to nothing cannot become a document key; a slug already in use
// is rejected instead of silently overwritten.
func (r *LocationRepository) AddCountry(ctx context.Context, name string) (*models.Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrValidation
	}

	slug := utils.Slugify(name)
	if slug == "" {
		return nil, models.ErrInvalidSlug
	}

	err := r.collection.FindOne(ctx, bson.M{"_id": slug}).Err()
	if err == nil {
		return nil, models.ErrAlreadyExists
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	country := models.Country{
		ID:           slug,
		Name:         name,
		Governorates: []models.Governorate{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := r.collection.InsertOne(ctx, country); err != nil {
		return nil, err
	}
	return &country, nil
}

// AddGovernorate appends a governorate to the country's top-level array.
func (r *LocationRepository) AddGovernorate(ctx context.Context, countryID, name string) (*models.Governorate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrValidation
	}

	slug := utils.Slugify(name)
	if slug == "" {
		return nil, models.ErrInvalidSlug
	}

	country, err := r.Get(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if models.HasGovernorate(country.Governorates, slug) {
		return nil, models.ErrAlreadyExists
	}

	governorate := models.Governorate{
		ID:        slug,
		Name:      name,
		Districts: []models.District{},
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": countryID},
		bson.M{
			"$addToSet": bson.M{"governorates": governorate},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return nil, err
	}
	return &governorate, nil
}

// AddDistrict appends a district to a governorate by rewriting the entire
// governorates array of the owning country.
func (r *LocationRepository) AddDistrict(ctx context.Context, countryID, governorateID, name string) (*models.District, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.ErrValidation
	}

	slug := utils.Slugify(name)
	if slug == "" {
		return nil, models.ErrInvalidSlug
	}

	country, err := r.Get(ctx, countryID)
	if err != nil {
		return nil, err
	}

	governorate, found := models.FindGovernorate(country.Governorates, governorateID)
	if !found {
		return nil, mongo.ErrNoDocuments
	}
	if governorate.HasDistrict(slug) {
		return nil, models.ErrAlreadyExists
	}

	district := models.District{ID: slug, Name: name}
	governorates, _ := models.WithDistrictAdded(country.Governorates, governorateID, district)

	if err := r.writeGovernorates(ctx, countryID, governorates); err != nil {
		return nil, err
	}
	return &district, nil
}

// DeleteCountry removes the whole country document after checking the
// country id, every governorate id and every district id against listings.
func (r *LocationRepository) DeleteCountry(ctx context.Context, countryID string) error {
	country, err := r.Get(ctx, countryID)
	if err != nil {
		return err
	}

	if err := r.checkAssociations(ctx, country.Name, []associationCheck{
		{"locationCountry.id", []string{country.ID}},
		{"locationGovernorate.id", country.GovernorateIDs()},
		{"locationDistrict.id", country.DistrictIDs()},
	}); err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": countryID})
	return err
}

// DeleteGovernorate removes a governorate (and its embedded districts) by
// rewriting the governorates array.
func (r *LocationRepository) DeleteGovernorate(ctx context.Context, countryID, governorateID string) error {
	country, err := r.Get(ctx, countryID)
	if err != nil {
		return err
	}

	governorate, found := models.FindGovernorate(country.Governorates, governorateID)
	if !found {
		return mongo.ErrNoDocuments
	}

	if err := r.checkAssociations(ctx, governorate.Name, []associationCheck{
		{"locationGovernorate.id", []string{governorate.ID}},
		{"locationDistrict.id", governorate.DistrictIDs()},
	}); err != nil {
		return err
	}

	governorates, _ := models.WithGovernorateRemoved(country.Governorates, governorateID)
	return r.writeGovernorates(ctx, countryID, governorates)
}

// DeleteDistrict removes a district by rewriting the governorates array.
func (r *LocationRepository) DeleteDistrict(ctx context.Context, countryID, governorateID, districtID string) error {
	country, err := r.Get(ctx, countryID)
	if err != nil {
		return err
	}

	governorate, found := models.FindGovernorate(country.Governorates, governorateID)
	if !found {
		return mongo.ErrNoDocuments
	}

	districtName := districtID
	for _, d := range governorate.Districts {
		if d.ID == districtID {
			districtName = d.Name
		}
	}

	if err := r.checkAssociations(ctx, districtName, []associationCheck{
		{"locationDistrict.id", []string{districtID}},
	}); err != nil {
		return err
	}

	governorates, found := models.WithDistrictRemoved(country.Governorates, governorateID, districtID)
	if !found {
		return mongo.ErrNoDocuments
	}
	return r.writeGovernorates(ctx, countryID, governorates)
}

type associationCheck struct {
	field string
	ids   []string
}

// checkAssociations runs the guard once per level-specific listing field and
// fails closed on query errors.
func (r *LocationRepository) checkAssociations(ctx context.Context, name string, checks []associationCheck) error {
	for _, check := range checks {
		associated, err := r.guard.IsAssociated(ctx, check.field, check.ids)
		if err != nil {
			return err
		}
		if associated {
			return &models.DeletionBlockedError{Name: name}
		}
	}
	return nil
}

func (r *LocationRepository) writeGovernorates(ctx context.Context, countryID string, governorates []models.Governorate) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": countryID},
		bson.M{"$set": bson.M{"governorates": governorates, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
