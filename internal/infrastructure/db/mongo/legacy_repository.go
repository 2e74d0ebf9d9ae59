package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spendwise/expense-api/internal/core/domain"
)

const legacyCollection = "legacy_profiles"

// LegacyProfileRepository reads the single-user record left behind by the
// pre-multi-account storage scheme. It is read-only: migration writes into
// the accounts collection, never back here.
type LegacyProfileRepository struct {
	coll *mongo.Collection
}

func NewLegacyProfileRepository(db *mongo.Database) *LegacyProfileRepository {
	return &LegacyProfileRepository{coll: db.Collection(legacyCollection)}
}

type legacyProfileDoc struct {
	Name     string `bson:"name,omitempty"`
	Email    string `bson:"user_email"`
	Password string `bson:"user_password"`
}

func (r *LegacyProfileRepository) Fetch(ctx context.Context) (*domain.LegacyProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc legacyProfileDoc
	if err := r.coll.FindOne(ctx, bson.M{}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("fetch legacy profile: %w", err)
	}

	return &domain.LegacyProfile{
		Name:     doc.Name,
		Email:    doc.Email,
		Password: doc.Password,
	}, nil
}
