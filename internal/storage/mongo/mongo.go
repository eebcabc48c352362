package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"staff_portal/internal/config"
	"staff_portal/internal/models"
	"staff_portal/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo keeps the encoded snapshot as the body of one document keyed by name.
type MongoRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
	name   string
}

type document struct {
	ID        string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func New(ctx context.Context, cfg config.Mongo, name string) (*MongoRepo, error) {
	const op = "storage.mongo.New"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &MongoRepo{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		name:   name,
	}, nil
}

func (r *MongoRepo) Load(ctx context.Context) (*models.Snapshot, error) {
	const op = "storage.mongo.Load"

	var doc document

	err := r.coll.FindOne(ctx, bson.M{"_id": r.name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return storage.Empty(), nil
		}

		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	snap, err := storage.Decode([]byte(doc.Body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return snap, nil
}

func (r *MongoRepo) Save(ctx context.Context, snap *models.Snapshot) error {
	const op = "storage.mongo.Save"

	body, err := storage.Encode(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	doc := document{
		ID:        r.name,
		Body:      string(body),
		UpdatedAt: time.Now().UTC(),
	}

	_, err = r.coll.ReplaceOne(ctx, bson.M{"_id": r.name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, storage.ErrIO, err)
	}

	return nil
}

func (r *MongoRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
