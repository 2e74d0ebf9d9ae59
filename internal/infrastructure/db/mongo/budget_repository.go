package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spendwise/expense-api/internal/core/domain"
)

const budgetsCollection = "budgets"

type BudgetRepository struct {
	coll *mongo.Collection
}

func NewBudgetRepository(db *mongo.Database) *BudgetRepository {
	return &BudgetRepository{coll: db.Collection(budgetsCollection)}
}

type mongoBudget struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AccountID string             `bson:"account_id"`
	Value     float64            `bson:"value"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *BudgetRepository) FindByAccount(ctx context.Context, accountID string) (*domain.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoBudget
	if err := r.coll.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}

	return &domain.Budget{
		ID:        m.ID.Hex(),
		AccountID: m.AccountID,
		Value:     m.Value,
		UpdatedAt: unixToTime(m.UpdatedAt),
	}, nil
}

func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBudget{
		AccountID: budget.AccountID,
		Value:     budget.Value,
		UpdatedAt: budget.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		// The unique account_id index makes lazy creation race-safe: the
		// loser of the race reads back the winner's record.
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByAccount(ctx, budget.AccountID)
		}
		return nil, fmt.Errorf("insert budget: %w", err)
	}

	created := *budget
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BudgetRepository) UpdateValue(ctx context.Context, id string, value float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBudgetNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"value": value, "updated_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

// EnsureIndexes creates the unique account index: at most one budget per account.
func (r *BudgetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "account_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
