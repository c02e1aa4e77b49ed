//go:build integration

package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"phonebook/pkg/testutil/containers"
)

// TestMongoContactStore runs the shared store contract against a real
// MongoDB instance, so the collation sort, the visibility filter and the
// quoted-regex search are exercised server-side.
func TestMongoContactStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	mc := containers.NewMongoContainer(t)
	ctx := context.Background()

	runContactStoreSuite(t, func() contactBackend {
		require.NoError(t, mc.DropDatabase(ctx, "phonebook_test"))
		store := NewMongo(mc.Client.Database("phonebook_test"))
		require.NoError(t, store.EnsureIndexes(ctx))
		return store
	})
}
