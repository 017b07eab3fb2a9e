package store

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/maze"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "mazer"
	DefaultCollection = "snapshots"
)

// mongoDocument is the stored form of a Document. The snapshot is kept as
// its JSON encoding so the wire format and the stored format never drift.
type mongoDocument struct {
	ID        string    `bson:"_id"`
	Topology  string    `bson:"topology"`
	Cells     int       `bson:"cells"`
	Snapshot  string    `bson:"snapshot"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at,omitempty"`
}

// MongoStore stores snapshots in a MongoDB collection. Expiry is enforced
// by a TTL index on expires_at and re-checked on read.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	owned      bool
}

// NewMongoStore connects to uri, pings the server and ensures the TTL index.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if err := errors.ValidateEndpoint(uri, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	if database == "" {
		database = DefaultDatabase
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to mongodb")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}

	s := NewMongoStoreFromClient(client, database, DefaultCollection)
	s.owned = true
	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// NewMongoStoreFromClient uses an existing client. Close does not
// disconnect it.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create snapshot indexes")
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, doc *Document) error {
	if err := prepare(doc); err != nil {
		return err
	}
	data, err := json.Marshal(doc.Snapshot)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot")
	}
	md := mongoDocument{
		ID:        doc.ID,
		Topology:  doc.Snapshot.Topology().String(),
		Cells:     doc.Snapshot.Len(),
		Snapshot:  string(data),
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, md, opts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save snapshot %s", doc.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Document, error) {
	var md mongoDocument
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load snapshot %s", id)
	}
	doc, err := md.document()
	if err != nil {
		return nil, err
	}
	if doc.IsExpired() {
		return nil, notFound(id)
	}
	return doc, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"expires_at": bson.M{"$exists": false}},
		bson.M{"expires_at": bson.M{"$gt": time.Now()}},
	}}

	cur, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list snapshots")
	}
	defer cur.Close(ctx)

	var out []*Document
	for cur.Next(ctx) {
		var md mongoDocument
		if err := cur.Decode(&md); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode snapshot")
		}
		doc, err := md.document()
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list snapshots")
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete snapshot %s", id)
	}
	return nil
}

// Cleanup deletes expired documents without waiting for the TTL monitor.
func (s *MongoStore) Cleanup(ctx context.Context) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "cleanup snapshots")
	}
	return nil
}

// Close disconnects the client when the store created it.
func (s *MongoStore) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (md mongoDocument) document() (*Document, error) {
	var snap maze.Snapshot
	if err := json.Unmarshal([]byte(md.Snapshot), &snap); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode stored snapshot %s", md.ID)
	}
	return &Document{
		ID:        md.ID,
		Snapshot:  &snap,
		CreatedAt: md.CreatedAt,
		ExpiresAt: md.ExpiresAt,
	}, nil
}

var _ Store = (*MongoStore)(nil)
