package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore implements Store on a MongoDB database. Each Store collection
// maps to a Mongo collection with the document key as _id.
type MongoStore struct {
	db *mongo.Database
}

// ConnectMongo dials MongoDB and verifies the connection.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{db: client.Database(database)}, nil
}

// NewMongoStore wraps an already-connected database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Get(ctx context.Context, collection, key string, dest any) (bool, error) {
	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, unavailable(err)
	}

	delete(doc, "_id")
	data, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode document %s/%s: %w", collection, key, err)
	}
	return true, nil
}

func (s *MongoStore) Set(ctx context.Context, collection, key string, record any, merge bool) error {
	doc, err := toDoc(record)
	if err != nil {
		return fmt.Errorf("encode document %s/%s: %w", collection, key, err)
	}

	coll := s.db.Collection(collection)
	if merge {
		update := bson.M{"$set": bson.M(doc)}
		opts := options.Update().SetUpsert(true)
		if _, err := coll.UpdateByID(ctx, key, update, opts); err != nil {
			return unavailable(err)
		}
		return nil
	}

	doc["_id"] = key
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"_id": key}, bson.M(doc), opts); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *MongoStore) ListAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, unavailable(err)
	}
	defer cursor.Close(ctx)

	var docs []json.RawMessage
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, unavailable(err)
		}
		delete(doc, "_id")
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, err
		}
		docs = append(docs, data)
	}
	if err := cursor.Err(); err != nil {
		return nil, unavailable(err)
	}
	return docs, nil
}
