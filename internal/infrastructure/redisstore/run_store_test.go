package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/approval"
	"github.com/oksasatya/go-ddd-user-approval/pkg/helpers"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := helpers.NewRedisClient(addr, "", 0)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())
	return NewRunStore(rdb, time.Minute)
}

func TestRunStore_SaveGetList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	requestID := "req-" + uuid.NewString()
	started := time.Now().UTC()

	first := &approval.Run{ID: uuid.NewString(), RequestID: requestID, State: approval.StartState,
		Status: approval.StatusRunning, StartedAt: started, History: []approval.Step{}}
	second := &approval.Run{ID: uuid.NewString(), RequestID: requestID, State: approval.StateSucceeded,
		Status: approval.StatusSucceeded, StartedAt: started.Add(time.Second), History: []approval.Step{}}

	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))
	first.Status = approval.StatusFailed
	require.NoError(t, store.Save(ctx, first))

	got, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, approval.StatusFailed, got.Status)

	runs, err := store.ListByRequest(ctx, requestID)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first.ID, runs[0].ID)
	assert.Equal(t, second.ID, runs[1].ID)
}

func TestRunStore_GetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, approval.ErrRunNotFound)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "approval:run:abc", runKey("abc"))
	assert.Equal(t, "approval:request:r1", requestKey("r1"))
}
