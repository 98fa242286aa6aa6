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
)

const collectionCodes = "otps"

type codeDocument struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

// CodeRepository implements ports.CodeRepository using MongoDB. Codes are
// hard-deleted.
type CodeRepository struct {
	col *mongo.Collection
}

func NewCodeRepository(db *mongo.Database) *CodeRepository {
	return &CodeRepository{col: db.Collection(collectionCodes)}
}

func (r *CodeRepository) Create(ctx context.Context, code *domain.OneTimeCode) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	doc := codeDocument{
		ID:        code.ID,
		Email:     code.Email,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt.UTC(),
		CreatedAt: code.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert code: %w", err)
	}
	return nil
}

func (r *CodeRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*domain.OneTimeCode, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var doc codeDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email, "code": code}, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("find code: %w", err)
	}
	return &domain.OneTimeCode{
		ID:        doc.ID,
		Email:     doc.Email,
		Code:      doc.Code,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (r *CodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"email": email}); err != nil {
		return fmt.Errorf("delete codes: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index and a TTL index that lets MongoDB
// purge codes once they expire.
func (r *CodeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "code", Value: 1}}},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
