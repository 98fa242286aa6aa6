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

const collectionGroups = "groups"

type groupDocument struct {
	ID        string     `bson:"_id"`
	Name      string     `bson:"name"`
	CreatedAt time.Time  `bson:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty"`
}

func (d groupDocument) toDomain() *domain.Group {
	return &domain.Group{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		DeletedAt: d.DeletedAt,
	}
}

// GroupRepository implements ports.GroupRepository using MongoDB.
type GroupRepository struct {
	col *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *GroupRepository {
	return &GroupRepository{col: db.Collection(collectionGroups)}
}

func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	doc := groupDocument{
		ID:        group.ID,
		Name:      group.Name,
		CreatedAt: group.CreatedAt.UTC(),
		UpdatedAt: group.UpdatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrGroupExists
		}
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc groupDocument
	if err := r.col.FindOne(ctx, notDeleted(bson.M{"_id": id})).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GroupRepository) List(ctx context.Context) ([]*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, notDeleted(bson.M{}), opts)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer cur.Close(ctx)

	var docs []groupDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode groups: %w", err)
	}
	groups := make([]*domain.Group, 0, len(docs))
	for _, d := range docs {
		groups = append(groups, d.toDomain())
	}
	return groups, nil
}

// Rename sets a new name. Last write wins between concurrent renames.
func (r *GroupRepository) Rename(ctx context.Context, id, name string) (*domain.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc groupDocument
	err := r.col.FindOneAndUpdate(ctx,
		notDeleted(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"name": name, "updated_at": time.Now().UTC()}},
		opts,
	).Decode(&doc)
	if err != nil {
		switch {
		case isNoDocuments(err):
			return nil, domain.ErrGroupNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrGroupExists
		}
		return nil, fmt.Errorf("rename group: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *GroupRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete(ctx, r.col, id, time.Now().UTC(), domain.ErrGroupNotFound)
}

// EnsureIndexes creates the unique name index.
func (r *GroupRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
