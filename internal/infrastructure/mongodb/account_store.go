package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oksasatya/go-account-service/internal/domain/entity"
	"github.com/oksasatya/go-account-service/internal/domain/repository"
)

const (
	// DefaultDBName is used when no database name is configured.
	DefaultDBName = "accounts"

	// DefaultCollectionName is used when no collection name is configured.
	DefaultCollectionName = "users"
)

// Connect dials uri and verifies the primary is reachable.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// document is the stored shape of an account.
type document struct {
	ID             string    `bson:"_id"`
	Fullname       string    `bson:"fullname"`
	Username       string    `bson:"username"`
	Email          string    `bson:"email"`
	Password       string    `bson:"password"`
	Role           string    `bson:"role"`
	ProfilePicture string    `bson:"profilePicture"`
	IsActive       bool      `bson:"isActive"`
	ActivationCode string    `bson:"activationCode"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

func toDocument(a *entity.Account) document {
	return document{
		ID:             a.ID,
		Fullname:       a.Fullname,
		Username:       a.Username,
		Email:          a.Email,
		Password:       a.PasswordDigest,
		Role:           string(a.Role),
		ProfilePicture: a.ProfilePicture,
		IsActive:       a.IsActive,
		ActivationCode: a.ActivationCode,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (d document) toEntity() *entity.Account {
	return &entity.Account{
		ID:             d.ID,
		Fullname:       d.Fullname,
		Username:       d.Username,
		Email:          d.Email,
		PasswordDigest: d.Password,
		Role:           entity.Role(d.Role),
		ProfilePicture: d.ProfilePicture,
		IsActive:       d.IsActive,
		ActivationCode: d.ActivationCode,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// AccountStore persists accounts as documents in a single collection.
// It's safe to use concurrently from multiple goroutines.
type AccountStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewAccountStore(client *mongo.Client, dbName, collection string) *AccountStore {
	if dbName == "" {
		dbName = DefaultDBName
	}
	if collection == "" {
		collection = DefaultCollectionName
	}
	return &AccountStore{coll: client.Database(dbName).Collection(collection), now: time.Now}
}

// EnsureIndexes creates the unique username/email indexes and the activation code lookup index.
func (s *AccountStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "activationCode", Value: 1}}},
	})
	return err
}

func (s *AccountStore) Insert(ctx context.Context, a *entity.Account) error {
	if _, err := s.coll.InsertOne(ctx, toDocument(a)); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (s *AccountStore) FindByIdentifier(ctx context.Context, identifier string, activeOnly bool) (*entity.Account, error) {
	filter := identifierFilter(identifier, activeOnly)
	return s.findOne(ctx, filter)
}

func (s *AccountStore) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *AccountStore) ActivateByCode(ctx context.Context, code string) (*entity.Account, error) {
	update := bson.M{"$set": bson.M{"isActive": true, "updatedAt": s.now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc document
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"activationCode": code}, update, opts).Decode(&doc)
	if err != nil {
		return nil, mapReadError(err)
	}
	return doc.toEntity(), nil
}

func (s *AccountStore) findOne(ctx context.Context, filter bson.M) (*entity.Account, error) {
	var doc document
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapReadError(err)
	}
	return doc.toEntity(), nil
}

func identifierFilter(identifier string, activeOnly bool) bson.M {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"email": identifier},
			bson.M{"username": identifier},
		},
	}
	if activeOnly {
		filter["isActive"] = true
	}
	return filter
}

func mapReadError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}

var _ repository.AccountStore = (*AccountStore)(nil)
