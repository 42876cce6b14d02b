package contentful

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validProviderConfig() ClientConfig {
	return ClientConfig{SpaceID: "space1", AccessToken: "token1"}
}

// TestClientProvider_MissingCredentials: no silent fallback without creds.
func TestClientProvider_MissingCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  ClientConfig
	}{
		{name: "no space id", cfg: ClientConfig{AccessToken: "token1"}},
		{name: "no access token", cfg: ClientConfig{SpaceID: "space1"}},
		{name: "neither", cfg: ClientConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewClientProvider(tt.cfg, 0, zap.NewNop())

			client, err := p.Client()
			assert.Nil(t, client)
			assert.ErrorIs(t, err, ErrMissingCredentials)
		})
	}
}

// TestClientProvider_CachesHandle: repeated calls inside maxAge return the
// same client.
func TestClientProvider_CachesHandle(t *testing.T) {
	p := NewClientProvider(validProviderConfig(), 0, zap.NewNop())

	first, err := p.Client()
	require.NoError(t, err)
	second, err := p.Client()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

// TestClientProvider_RebuildsStaleHandle advances the injected clock past
// maxAge and expects a fresh client.
func TestClientProvider_RebuildsStaleHandle(t *testing.T) {
	p := NewClientProvider(validProviderConfig(), 10*time.Minute, zap.NewNop())

	current := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return current }

	first, err := p.Client()
	require.NoError(t, err)

	// still fresh
	current = current.Add(9 * time.Minute)
	same, err := p.Client()
	require.NoError(t, err)
	assert.Same(t, first, same)

	// past maxAge
	current = current.Add(2 * time.Minute)
	rebuilt, err := p.Client()
	require.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
}

// TestClientProvider_Invalidate forces a rebuild on the next call.
func TestClientProvider_Invalidate(t *testing.T) {
	p := NewClientProvider(validProviderConfig(), 0, zap.NewNop())

	first, err := p.Client()
	require.NoError(t, err)

	p.Invalidate()

	rebuilt, err := p.Client()
	require.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
}

// TestClientProvider_DefaultMaxAge: non-positive maxAge selects the default.
func TestClientProvider_DefaultMaxAge(t *testing.T) {
	p := NewClientProvider(validProviderConfig(), 0, zap.NewNop())
	assert.Equal(t, DefaultMaxClientAge, p.maxAge)

	p = NewClientProvider(validProviderConfig(), -time.Minute, zap.NewNop())
	assert.Equal(t, DefaultMaxClientAge, p.maxAge)
}
