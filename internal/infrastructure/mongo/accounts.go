package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-otp-signup/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type accountDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d accountDoc) toDomain(role domain.Role) domain.Account {
	return domain.Account{
		AccountID: d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
		Role:      role.Collection(),
	}
}

// collectionName maps a role onto its MongoDB collection.
func collectionName(role domain.Role) string {
	if role.Collection() == domain.RoleShopkeeper {
		return CollectionShopkeepers
	}
	return CollectionUsers
}

// AccountRepo stores accounts in the users and shopkeepers collections.
// The identifier is the ObjectID MongoDB assigns on insert.
type AccountRepo struct {
	db *mongo.Database
}

func NewAccountRepo(db *mongo.Database) *AccountRepo {
	return &AccountRepo{db: db}
}

// EnsureIndexes creates the unique email index on both collections.
// Duplicate detection on Insert depends on it.
func (r *AccountRepo) EnsureIndexes(ctx context.Context) error {
	for _, name := range []string{CollectionUsers, CollectionShopkeepers} {
		_, err := r.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("create email index on %s: %w", name, err)
		}
	}
	return nil
}

func (r *AccountRepo) Insert(ctx context.Context, role domain.Role, a *domain.Account) (string, error) {
	doc := accountDoc{
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Password:  a.Password,
		CreatedAt: a.CreatedAt,
	}
	res, err := r.db.Collection(collectionName(role)).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("email %s already registered: %w", a.Email, domain.ErrConflict)
		}
		return "", err
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	a.AccountID = oid.Hex()
	a.Role = role.Collection()
	return a.AccountID, nil
}

func (r *AccountRepo) FindByCredentials(ctx context.Context, role domain.Role, email, password string) (*domain.Account, error) {
	var doc accountDoc
	err := r.db.Collection(collectionName(role)).
		FindOne(ctx, bson.M{"email": email, "password": password}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	a := doc.toDomain(role)
	return &a, nil
}

func (r *AccountRepo) List(ctx context.Context, role domain.Role, limit int) ([]domain.Account, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.db.Collection(collectionName(role)).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, len(docs))
	for i, d := range docs {
		accounts[i] = d.toDomain(role)
	}
	return accounts, nil
}

func (r *AccountRepo) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}
