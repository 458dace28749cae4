package internal

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoConnectTimeout = 5 * time.Second

// MongoStore keeps the account list in a single collection, used strictly as
// a key-value document store: load everything, replace everything. No custom
// indexes, no queries beyond a full scan.
type MongoStore struct {
	cfg MongoConfig
}

func NewMongoStore(cfg MongoConfig) *MongoStore {
	return &MongoStore{cfg: cfg}
}

// connect dials and pings the server. Any connection failure is reported as
// ErrStorageUnavailable so the caller can fall back to the file store.
func (s *MongoStore) connect(ctx context.Context) (*mongo.Client, *mongo.Collection, error) {
	dialCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: connecting to document store: %v", ErrStorageUnavailable, err)
	}
	if err := client.Ping(dialCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("%w: pinging document store: %v", ErrStorageUnavailable, err)
	}
	return client, client.Database(s.cfg.Database).Collection(s.cfg.Collection), nil
}

func (s *MongoStore) LoadAll(ctx context.Context) ([]Account, error) {
	client, coll, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect(context.Background())

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%w: reading accounts: %v", ErrStorageUnavailable, err)
	}

	var persisted []persistAccount
	if err := cursor.All(ctx, &persisted); err != nil {
		return nil, fmt.Errorf("%w: decoding accounts: %v", ErrStorageUnavailable, err)
	}

	return fromPersistList(persisted)
}

func (s *MongoStore) SaveAll(ctx context.Context, accounts []Account) error {
	client, coll, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("%w: clearing accounts: %v", ErrStorageUnavailable, err)
	}

	if len(accounts) == 0 {
		return nil
	}

	docs := make([]any, 0, len(accounts))
	for _, p := range toPersistList(accounts) {
		docs = append(docs, p)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%w: writing accounts: %v", ErrStorageUnavailable, err)
	}
	return nil
}
