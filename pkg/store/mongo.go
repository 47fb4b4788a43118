package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/errors"
)

const chartsCollection = "charts"

// Mongo persists definitions in a MongoDB collection, keyed by chart ID
// through the _id field.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongo connects to MongoDB at uri and uses the given database.
func NewMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongodb")
	}

	return &Mongo{
		client: client,
		coll:   client.Database(database).Collection(chartsCollection),
	}, nil
}

// Get loads a definition by chart ID.
func (s *Mongo) Get(ctx context.Context, id string) (*chart.Definition, error) {
	var def chart.Definition
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&def)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeChartNotFound, "chart %q not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load chart %q", id)
	}
	return &def, nil
}

// Put upserts a definition keyed by its ID.
func (s *Mongo) Put(ctx context.Context, def *chart.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": def.ID}, def,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "store chart %q", def.ID)
	}
	return nil
}

// Delete removes a definition.
func (s *Mongo) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete chart %q", id)
	}
	return nil
}

// List returns the IDs of all stored charts.
func (s *Mongo) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list charts")
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "decode chart id")
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "iterate charts")
	}
	return ids, nil
}

// Close disconnects from MongoDB.
func (s *Mongo) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*Mongo)(nil)
