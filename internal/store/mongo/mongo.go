// Package mongo is the MongoDB backed Store
package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/afyastaff/afyastaff/internal/config"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/logger"
	"github.com/afyastaff/afyastaff/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens and pings a client for the configured deployment
func Connect(cfg *config.Configuration, log *logger.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout(cfg))
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI).SetRegistry(store.Registry))
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to connect to MongoDB").
			Mark(ierr.ErrDatabase)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to ping MongoDB").
			Mark(ierr.ErrDatabase)
	}

	log.Infow("connected to MongoDB", "database", cfg.Mongo.Database)
	return client, nil
}

func timeout(cfg *config.Configuration) time.Duration {
	if cfg.Mongo.Timeout > 0 {
		return cfg.Mongo.Timeout
	}
	return 10 * time.Second
}

var _ store.Store = (*Store)(nil)

// Store implements store.Store over one database
type Store struct {
	db  *mongo.Database
	log *logger.Logger
}

func NewStore(client *mongo.Client, cfg *config.Configuration, log *logger.Logger) *Store {
	return &Store{db: client.Database(cfg.Mongo.Database), log: log}
}

// EnsureIndexes creates the organization scope index on every collection
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for _, name := range store.Collections {
		_, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "organization_id", Value: 1}},
		})
		if err != nil {
			return translate(err, name, "")
		}
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, name, id string, doc any) error {
	if _, err := s.db.Collection(name).InsertOne(ctx, doc); err != nil {
		return translate(err, name, id)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, name, id string) (bson.Raw, error) {
	raw, err := s.db.Collection(name).FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		return nil, translate(err, name, id)
	}
	return raw, nil
}

func (s *Store) Replace(ctx context.Context, name, id string, doc any) error {
	res, err := s.db.Collection(name).ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return translate(err, name, id)
	}
	if res.MatchedCount == 0 {
		return store.NotFound(name, id)
	}
	return nil
}

func (s *Store) CompareAndSwap(ctx context.Context, name, id string, expectedVersion int64, doc any) error {
	coll := s.db.Collection(name)
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id, store.VersionField: expectedVersion}, doc)
	if err != nil {
		return translate(err, name, id)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, name, id)
	}
	if n == 0 {
		return store.NotFound(name, id)
	}
	return store.VersionConflict(name, id, expectedVersion)
}

func (s *Store) Upsert(ctx context.Context, name, id string, doc any) error {
	_, err := s.db.Collection(name).ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return translate(err, name, id)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name, id string) error {
	res, err := s.db.Collection(name).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err, name, id)
	}
	if res.DeletedCount == 0 {
		return store.NotFound(name, id)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, name string, filter store.Filter, opts *store.FindOptions) ([]bson.Raw, error) {
	findOpts := options.Find()
	if opts != nil {
		if opts.SortBy != "" {
			direction := 1
			if opts.Descending {
				direction = -1
			}
			findOpts.SetSort(bson.D{{Key: opts.SortBy, Value: direction}})
		}
		if opts.Limit > 0 {
			findOpts.SetLimit(opts.Limit)
		}
	}

	cursor, err := s.db.Collection(name).Find(ctx, toQuery(filter), findOpts)
	if err != nil {
		return nil, translate(err, name, "")
	}

	results := make([]bson.Raw, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, translate(err, name, "")
	}
	return results, nil
}

func (s *Store) Count(ctx context.Context, name string, filter store.Filter) (int64, error) {
	n, err := s.db.Collection(name).CountDocuments(ctx, toQuery(filter))
	if err != nil {
		return 0, translate(err, name, "")
	}
	return n, nil
}

func toQuery(filter store.Filter) bson.M {
	query := bson.M{}
	for key, value := range filter {
		if set, ok := value.(store.Set); ok {
			query[key] = bson.M{"$in": set.Values}
			continue
		}
		query[key] = value
	}
	return query
}

func translate(err error, name, id string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.NotFound(name, id)
	case mongo.IsDuplicateKeyError(err):
		return store.AlreadyExists(name, id)
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, context.DeadlineExceeded):
		return ierr.WithError(err).
			WithHint("The database is temporarily unavailable, please try again").
			WithReportableDetails(map[string]any{"collection": name}).
			Mark(ierr.ErrTransient)
	default:
		return ierr.WithError(err).
			WithMessage("database operation failed").
			WithReportableDetails(map[string]any{"collection": name, "id": id}).
			Mark(ierr.ErrDatabase)
	}
}
