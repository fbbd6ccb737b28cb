package files

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const filesCollection = "files"

type fileDocument struct {
	ID        bson.ObjectID `bson:"_id"`
	UserID    bson.ObjectID `bson:"userId"`
	Name      string        `bson:"name"`
	Type      Kind          `bson:"type"`
	IsPublic  bool          `bson:"isPublic"`
	ParentID  string        `bson:"parentId"`
	LocalPath string        `bson:"localPath,omitempty"`
}

func (d fileDocument) file() File {
	return File{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Name:      d.Name,
		Type:      d.Type,
		IsPublic:  d.IsPublic,
		ParentID:  ParentID(d.ParentID).Normalize(),
		LocalPath: d.LocalPath,
	}
}

// MongoStorage implements Storage on the "files" collection. Ids are
// ObjectIDs; malformed hex ids never match.
type MongoStorage struct {
	files *mongo.Collection
}

// NewMongoStorage creates a file record storage.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{files: db.Collection(filesCollection)}
}

// EnsureIndexes creates the listing index.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.files.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "parentId", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}

func (s *MongoStorage) CreateFile(ctx context.Context, f *File) error {
	id, err := bson.ObjectIDFromHex(f.ID)
	if err != nil {
		return err
	}
	userID, err := bson.ObjectIDFromHex(f.UserID)
	if err != nil {
		return err
	}

	_, err = s.files.InsertOne(ctx, fileDocument{
		ID:        id,
		UserID:    userID,
		Name:      f.Name,
		Type:      f.Type,
		IsPublic:  f.IsPublic,
		ParentID:  string(f.ParentID.Normalize()),
		LocalPath: f.LocalPath,
	})
	return err
}

func (s *MongoStorage) GetFile(ctx context.Context, id string) (*File, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStorage) GetUserFile(ctx context.Context, userID, id string) (*File, error) {
	filter, ok := ownedFilter(userID, id)
	if !ok {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, filter)
}

func (s *MongoStorage) ListFiles(ctx context.Context, userID string, parentID ParentID, offset, limit int) ([]File, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return []File{}, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := s.files.Find(ctx, bson.M{"userId": uid, "parentId": string(parentID.Normalize())}, opts)
	if err != nil {
		return nil, err
	}

	var docs []fileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	list := make([]File, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.file())
	}
	return list, nil
}

func (s *MongoStorage) SetPublic(ctx context.Context, userID, id string, public bool) error {
	filter, ok := ownedFilter(userID, id)
	if !ok {
		return ErrNotFound
	}
	res, err := s.files.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"isPublic": public}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountFiles returns the number of stored records.
func (s *MongoStorage) CountFiles(ctx context.Context) (int64, error) {
	return s.files.CountDocuments(ctx, bson.D{})
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.M) (*File, error) {
	var doc fileDocument
	err := s.files.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	f := doc.file()
	return &f, nil
}

func ownedFilter(userID, id string) (bson.M, bool) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "userId": uid}, true
}
