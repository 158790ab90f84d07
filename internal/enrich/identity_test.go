package enrich

import (
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity_DefaultsUseSystemHostname(t *testing.T) {
	want, err := os.Hostname()
	require.NoError(t, err)

	got, err := NewIdentity(nil, nil).Hostname()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIdentity_HostnameLookedUpOnce(t *testing.T) {
	calls := 0
	identity := NewIdentity(func() (string, error) {
		calls++
		return "host", nil
	}, nil)

	for i := 0; i < 3; i++ {
		got, err := identity.Hostname()
		require.NoError(t, err)
		assert.Equal(t, "host", got)
	}
	assert.Equal(t, 1, calls)
}

func TestIdentity_ConcurrentInstanceID(t *testing.T) {
	identity := NewIdentity(nil, nil)

	var wg sync.WaitGroup
	ids := make([]string, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := identity.InstanceID()
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestNewInstanceID_IsTimeOrderedUUID(t *testing.T) {
	first, err := NewInstanceID()
	require.NoError(t, err)
	second, err := NewInstanceID()
	require.NoError(t, err)

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, first, second)
	assert.Less(t, first, second)
}
