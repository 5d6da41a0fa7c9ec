package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReferentialGuard blocks deletion of taxonomy nodes that listings still
// reference. It only ever reads the listings collection.
type ReferentialGuard struct {
	listings *mongo.Collection
}

func NewReferentialGuard(db *mongo.Database) *ReferentialGuard {
	return &ReferentialGuard{listings: db.Collection("listings")}
}

// IsAssociated reports whether any listing's field value falls in the id
// set. Callers treat a query error as fail-closed: the delete does not run.
func (g *ReferentialGuard) IsAssociated(ctx context.Context, field string, ids []string) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}

	count, err := g.listings.CountDocuments(ctx,
		bson.M{field: bson.M{"$in": ids}},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
