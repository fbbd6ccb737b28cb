package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/dmitrymomot/filemanager/pkg/mongo"
)

const usersCollection = "users"

type userDocument struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Email    string        `bson:"email"`
	Password string        `bson:"password"`
}

func (d userDocument) user() *User {
	return &User{ID: d.ID.Hex(), Email: d.Email}
}

// MongoStorage implements UserStorage on the "users" collection.
type MongoStorage struct {
	users *mongo.Collection
}

// NewMongoStorage creates a user storage.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{users: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}
	return nil
}

func (s *MongoStorage) CreateUser(ctx context.Context, email, passwordDigest string) (*User, error) {
	doc := userDocument{ID: bson.NewObjectID(), Email: email, Password: passwordDigest}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongox.IsDuplicateKey(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return doc.user(), nil
}

func (s *MongoStorage) GetUserByID(ctx context.Context, id string) (*User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoStorage) GetUserByCredentials(ctx context.Context, email, passwordDigest string) (*User, error) {
	return s.findOne(ctx, bson.M{"email": email, "password": passwordDigest})
}

// CountUsers returns the number of registered accounts.
func (s *MongoStorage) CountUsers(ctx context.Context) (int64, error) {
	return s.users.CountDocuments(ctx, bson.D{})
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.user(), nil
}
