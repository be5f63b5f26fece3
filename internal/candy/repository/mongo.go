package repository

import (
	"context"
	"errors"

	"github.com/candies-app/candies/internal/candy"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. Records are keyed
// by an ObjectID stored in _id, so no extra index is needed.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) List(ctx context.Context) ([]*candy.Candy, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*candy.Candy{}
	for cur.Next(ctx) {
		var c candy.Candy
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*candy.Candy, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var c candy.Candy
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (m *MongoRepo) Create(ctx context.Context, c *candy.Candy) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := m.col.InsertOne(ctx, c)
	return err
}

// Update $sets only the supplied, non-empty fields so concurrent partial
// updates of different fields do not overwrite each other.
func (m *MongoRepo) Update(ctx context.Context, id string, p candy.Patch) (*candy.Candy, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	set := setFields(p)
	if len(set) == 0 {
		return m.Get(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c candy.Candy
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func setFields(p candy.Patch) bson.M {
	set := bson.M{}
	if p.Name != nil && *p.Name != "" {
		set["name"] = *p.Name
	}
	if p.Color != nil && *p.Color != "" {
		set["color"] = *p.Color
	}
	return set
}

// Delete removes zero or one record; a missing id is not an error.
func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = m.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
