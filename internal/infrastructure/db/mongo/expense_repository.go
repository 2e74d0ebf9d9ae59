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
	"github.com/spendwise/expense-api/internal/core/ports"
)

const expensesCollection = "expenses"

type ExpenseRepository struct {
	coll *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	return &ExpenseRepository{coll: db.Collection(expensesCollection)}
}

type mongoExpense struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AccountID   string             `bson:"account_id"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Amount      float64            `bson:"amount"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (m mongoExpense) toDomain() domain.Expense {
	return domain.Expense{
		ID:          m.ID.Hex(),
		AccountID:   m.AccountID,
		Description: m.Description,
		Category:    domain.Category(m.Category),
		Amount:      m.Amount,
		Date:        m.Date.UTC(),
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func (r *ExpenseRepository) Insert(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoExpense{
		AccountID:   expense.AccountID,
		Description: expense.Description,
		Category:    string(expense.Category),
		Amount:      expense.Amount,
		Date:        expense.Date.UTC(),
		CreatedAt:   expense.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	created := *expense
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ExpenseRepository) FindByID(ctx context.Context, accountID, id string) (*domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrExpenseNotFound
	}

	var m mongoExpense
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "account_id": accountID}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}

	expense := m.toDomain()
	return &expense, nil
}

func (r *ExpenseRepository) ListByAccount(ctx context.Context, accountID string, filter ports.ExpenseFilter) ([]domain.Expense, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"account_id": accountID}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	if dateRange := dateRangeFilter(filter.DateFrom, filter.DateTo); dateRange != nil {
		query["date"] = dateRange
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var expenses []domain.Expense
	for cursor.Next(ctx) {
		var m mongoExpense
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode expense: %w", err)
		}
		expenses = append(expenses, m.toDomain())
	}
	return expenses, cursor.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(expense.ID)
	if err != nil {
		return domain.ErrExpenseNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "account_id": expense.AccountID},
		bson.M{"$set": bson.M{
			"description": expense.Description,
			"category":    string(expense.Category),
			"amount":      expense.Amount,
			"date":        expense.Date.UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, accountID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrExpenseNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "account_id": accountID})
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// CategoryTotals aggregates amount and count per category for the account,
// optionally limited to [from, to).
func (r *ExpenseRepository) CategoryTotals(ctx context.Context, accountID string, from, to time.Time) ([]ports.CategoryTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	match := bson.M{"account_id": accountID}
	if dateRange := dateRangeFilter(from, to); dateRange != nil {
		match["date"] = dateRange
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"total": -1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	defer cursor.Close(ctx)

	var totals []ports.CategoryTotal
	for cursor.Next(ctx) {
		var row struct {
			Category string  `bson:"_id"`
			Total    float64 `bson:"total"`
			Count    int     `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode category total: %w", err)
		}
		totals = append(totals, ports.CategoryTotal{
			Category: domain.Category(row.Category),
			Total:    row.Total,
			Count:    row.Count,
		})
	}
	return totals, cursor.Err()
}

// EnsureIndexes creates the account and date indexes used by listing and
// aggregation queries.
func (r *ExpenseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "category", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func dateRangeFilter(from, to time.Time) bson.M {
	if from.IsZero() && to.IsZero() {
		return nil
	}
	dateRange := bson.M{}
	if !from.IsZero() {
		dateRange["$gte"] = from.UTC()
	}
	if !to.IsZero() {
		dateRange["$lt"] = to.UTC()
	}
	return dateRange
}
