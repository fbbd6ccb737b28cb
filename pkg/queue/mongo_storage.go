package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	tasksCollection    = "tasks"
	deadTaskCollection = "tasks_dlq"
)

// MongoStorage implements the queue repositories on MongoDB so that API and
// worker processes share one queue.
type MongoStorage struct {
	tasks *mongo.Collection
	dlq   *mongo.Collection
	opts  storageOptions
}

// NewMongoStorage creates a storage backed by the "tasks" and "tasks_dlq" collections.
func NewMongoStorage(db *mongo.Database, opts ...StorageOption) *MongoStorage {
	return &MongoStorage{
		tasks: db.Collection(tasksCollection),
		dlq:   db.Collection(deadTaskCollection),
		opts:  newStorageOptions(opts),
	}
}

// EnsureIndexes creates the index used by ClaimTask.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.tasks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "queue", Value: 1},
			{Key: "status", Value: 1},
			{Key: "priority", Value: -1},
			{Key: "scheduled_at", Value: 1},
		},
	})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *MongoStorage) CreateTask(ctx context.Context, task *Task) error {
	if task == nil {
		return ErrPayloadNil
	}
	if _, err := s.tasks.InsertOne(ctx, task); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *MongoStorage) ClaimTask(ctx context.Context, workerID string, queues []string, lockDuration time.Duration) (*Task, error) {
	now := time.Now()
	filter := bson.M{
		"queue":        bson.M{"$in": queues},
		"scheduled_at": bson.M{"$lte": now},
		"$or": bson.A{
			bson.M{"status": TaskStatusPending},
			bson.M{"status": TaskStatusProcessing, "locked_until": bson.M{"$lt": now}},
		},
	}
	update := bson.M{"$set": bson.M{
		"status":       TaskStatusProcessing,
		"locked_until": now.Add(lockDuration),
		"locked_by":    workerID,
	}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "scheduled_at", Value: 1}}).
		SetReturnDocument(options.After)

	var task Task
	err := s.tasks.FindOneAndUpdate(ctx, filter, update, opts).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoTaskToClaim
	}
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return &task, nil
}

func (s *MongoStorage) CompleteTask(ctx context.Context, taskID string) error {
	return s.updateProcessing(ctx, taskID, bson.M{
		"$set":   bson.M{"status": TaskStatusCompleted, "processed_at": time.Now()},
		"$unset": bson.M{"locked_until": "", "locked_by": ""},
	})
}

func (s *MongoStorage) FailTask(ctx context.Context, taskID string, errMsg string) error {
	var task Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": taskID, "status": TaskStatusProcessing}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s is not processing", ErrTaskNotFound, taskID)
	}
	if err != nil {
		return errors.Join(ErrStorage, err)
	}

	retries := task.RetryCount + 1
	return s.updateProcessing(ctx, taskID, bson.M{
		"$set": bson.M{
			"status":       TaskStatusPending,
			"retry_count":  retries,
			"error":        errMsg,
			"scheduled_at": time.Now().Add(retryDelay(s.opts.retryBackoff, retries)),
		},
		"$unset": bson.M{"locked_until": "", "locked_by": ""},
	})
}

func (s *MongoStorage) MoveToDLQ(ctx context.Context, taskID string, errMsg string) error {
	var task Task
	err := s.tasks.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if err != nil {
		return errors.Join(ErrStorage, err)
	}

	// Upsert keeps a retried move idempotent.
	dead := newDeadTask(&task, errMsg, time.Now())
	if _, err := s.dlq.ReplaceOne(ctx, bson.M{"_id": dead.ID}, dead, options.Replace().SetUpsert(true)); err != nil {
		return errors.Join(ErrStorage, err)
	}
	if _, err := s.tasks.DeleteOne(ctx, bson.M{"_id": taskID}); err != nil {
		return errors.Join(ErrStorage, err)
	}
	return nil
}

func (s *MongoStorage) updateProcessing(ctx context.Context, taskID string, update bson.M) error {
	res, err := s.tasks.UpdateOne(ctx, bson.M{"_id": taskID, "status": TaskStatusProcessing}, update)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s is not processing", ErrTaskNotFound, taskID)
	}
	return nil
}
