package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/candies-app/candies/internal/candy"
	"github.com/candies-app/candies/internal/database"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// offlineRepo returns a repo on a client that never reaches a server;
// mongo.Connect does not dial, so calls that return before any I/O work.
func offlineRepo(t *testing.T) *MongoRepo {
	t.Helper()
	opts := options.Client().ApplyURI("mongodb://127.0.0.1:1").SetServerSelectionTimeout(100 * time.Millisecond)
	client, err := mongo.Connect(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return NewMongoRepo(client.Database("candies_test").Collection("candies"))
}

func TestMongoRepo_MalformedIDs(t *testing.T) {
	r := offlineRepo(t)
	ctx := context.Background()
	name := "x"

	for _, id := range []string{"", "bogus", "5f1d7f0e8b3c2a0017a1b2c", "zzzzzzzzzzzzzzzzzzzzzzzz", "5f1d7f0e8b3c2a0017a1b2c3ff"} {
		_, err := r.Get(ctx, id)
		require.ErrorIs(t, err, ErrNotFound, "get %q", id)

		_, err = r.Update(ctx, id, candy.Patch{Name: &name})
		require.ErrorIs(t, err, ErrNotFound, "update %q", id)

		require.NoError(t, r.Delete(ctx, id), "delete %q", id)
	}
}

func TestMongoRepo_SetFieldsOnlySupplied(t *testing.T) {
	name, empty := "Sour", ""
	require.Equal(t, bson.M{"name": "Sour"}, setFields(candy.Patch{Name: &name}))
	require.Equal(t, bson.M{"name": "Sour"}, setFields(candy.Patch{Name: &name, Color: &empty}))
	require.Empty(t, setFields(candy.Patch{}))
}

// Runs only against a live server: MONGODB_TEST_URI=mongodb://localhost:27017
func TestMongoRepoCRUD(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, uri, 5*time.Second)
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(ctx) }()

	col := client.Database("candies_test").Collection("candies_" + primitive.NewObjectID().Hex())
	defer func() { _ = col.Drop(ctx) }()
	r := NewMongoRepo(col)

	c := &candy.Candy{Name: "Gummy", Color: "red"}
	require.NoError(t, r.Create(ctx, c))
	require.False(t, c.ID.IsZero())

	got, err := r.Get(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "red", got.Color)

	green, sour := "green", "Sour"
	_, err = r.Update(ctx, c.ID.Hex(), candy.Patch{Color: &green})
	require.NoError(t, err)
	updated, err := r.Update(ctx, c.ID.Hex(), candy.Patch{Name: &sour})
	require.NoError(t, err)
	require.Equal(t, "Sour", updated.Name)
	require.Equal(t, "green", updated.Color)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "green", list[0].Color)

	require.NoError(t, r.Delete(ctx, c.ID.Hex()))
	require.NoError(t, r.Delete(ctx, c.ID.Hex()))
	_, err = r.Get(ctx, c.ID.Hex())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = r.Update(ctx, primitive.NewObjectID().Hex(), candy.Patch{Name: &sour})
	require.ErrorIs(t, err, ErrNotFound)
}
