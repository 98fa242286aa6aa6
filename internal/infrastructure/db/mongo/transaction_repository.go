package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tenantgate/admin-portal/internal/core/domain"
	"github.com/tenantgate/admin-portal/internal/core/ports"
)

const collectionTransactions = "transactions"

type transactionDocument struct {
	ID        string     `bson:"_id"`
	Title     string     `bson:"title"`
	UserID    string     `bson:"user_id"`
	GroupID   string     `bson:"group_id,omitempty"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty"`
}

func (d transactionDocument) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:        d.ID,
		Title:     d.Title,
		UserID:    d.UserID,
		GroupID:   d.GroupID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		DeletedAt: d.DeletedAt,
	}
}

// TransactionRepository implements ports.TransactionRepository using MongoDB.
type TransactionRepository struct {
	col *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection(collectionTransactions)}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	doc := transactionDocument{
		ID:        tx.ID,
		Title:     tx.Title,
		UserID:    tx.UserID,
		GroupID:   tx.GroupID,
		CreatedAt: tx.CreatedAt.UTC(),
		UpdatedAt: tx.UpdatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc transactionDocument
	if err := r.col.FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns matching transactions, newest first.
func (r *TransactionRepository) List(ctx context.Context, filter ports.TransactionFilter) ([]*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, transactionListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []transactionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	txs := make([]*domain.Transaction, 0, len(docs))
	for _, d := range docs {
		txs = append(txs, d.toDomain())
	}
	return txs, nil
}

// UpdateTitle renames a live transaction. Last write wins.
func (r *TransactionRepository) UpdateTitle(ctx context.Context, id, title string) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc transactionDocument
	err := r.col.FindOneAndUpdate(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"title": title, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TransactionRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete(ctx, r.col, id, time.Now().UTC(), domain.ErrTransactionNotFound)
}

// EnsureIndexes creates the scoping indexes used by List.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func transactionListFilter(f ports.TransactionFilter) bson.M {
	filter := bson.M{}
	if f.GroupID != "" {
		filter["group_id"] = f.GroupID
	}
	if f.OwnerID != "" {
		filter["user_id"] = f.OwnerID
	}
	return notDeleted(filter)
}
