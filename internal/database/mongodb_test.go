package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongo_InvalidURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "not-a-mongo-uri", time.Second)
	require.Error(t, err)
}

func TestConnectMongoWithRetry_GivesUp(t *testing.T) {
	start := time.Now()
	_, err := ConnectMongoWithRetry(context.Background(), "not-a-mongo-uri", time.Second, 3, 10*time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 3 attempts")
	// 10ms + 20ms of backoff between the three attempts
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestConnectMongoWithRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectMongoWithRetry(ctx, "not-a-mongo-uri", time.Second, 5, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}
