package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestVariations_PrefixAndSuffixToggles(t *testing.T) {
	got := Variations("vending-locker")
	assert.Contains(t, got, "locker")

	got = Variations("locker")
	assert.Contains(t, got, "vending-locker")
	assert.Contains(t, got, "locker-vending")
}

func TestVariations_PluralToggle(t *testing.T) {
	assert.Contains(t, Variations("goal"), "goals")
	assert.Contains(t, Variations("goals"), "goal")
}

func TestVariations_OrderAndDedup(t *testing.T) {
	got := Variations("Locker")

	// raw first, then decoded/normalized, then generated forms
	assert.Equal(t, "Locker", got[0])
	assert.Equal(t, "locker", got[1])

	seen := make(map[string]int)
	for _, v := range got {
		seen[v]++
	}
	for v, n := range seen {
		assert.Equal(t, 1, n, "duplicate variation %q", v)
	}
}

func TestVariations_EmptyInput(t *testing.T) {
	assert.Empty(t, Variations(""))
}

func TestHardcodedAlias(t *testing.T) {
	target, ok := HardcodedAlias("expand")
	assert.True(t, ok)
	assert.Equal(t, "expand-footprint", target)

	// alias lookup normalizes first
	target, ok = HardcodedAlias("  Expand_Your_Footprint ")
	assert.True(t, ok)
	assert.Equal(t, "expand-footprint", target)

	_, ok = HardcodedAlias("no-such-alias")
	assert.False(t, ok)
}

func TestRegistry_RoundTrip(t *testing.T) {
	r := NewRegistry()
	r.RegisterSlugChange("old-slug", "new-slug")

	target, ok := r.ProviderSlug("old-slug")
	assert.True(t, ok)
	assert.Equal(t, "new-slug", target)

	source, ok := r.URLSlug("new-slug")
	assert.True(t, ok)
	assert.Equal(t, "old-slug", source)
}

func TestRegistry_NormalizesBothSides(t *testing.T) {
	r := NewRegistry()
	r.RegisterSlugChange("Old_Slug", "New Slug")

	target, ok := r.ProviderSlug("old-slug")
	assert.True(t, ok)
	assert.Equal(t, "new-slug", target)
}

func TestRegistry_IgnoresBlankRegistrations(t *testing.T) {
	r := NewRegistry()
	r.RegisterSlugChange("", "new-slug")
	r.RegisterSlugChange("old-slug", "   ")

	assert.Empty(t, r.Mappings())
}

func TestResolver_RegistryBeatsAliasAndVariations(t *testing.T) {
	registry := NewRegistry()
	resolver := NewResolver(registry, zap.NewNop())

	// no registration: alias table wins over plain normalization
	assert.Equal(t, "expand-footprint", resolver.Resolve("expand"))

	// a registered rename takes precedence over the alias table
	registry.RegisterSlugChange("expand", "reach-new-locations")
	assert.Equal(t, "reach-new-locations", resolver.Resolve("expand"))

	registry.RegisterSlugChange("old-slug", "new-slug")
	assert.Equal(t, "new-slug", resolver.Resolve("old-slug"))
}

func TestResolver_FallsBackToNormalizedInput(t *testing.T) {
	resolver := NewResolver(NewRegistry(), zap.NewNop())

	assert.Equal(t, "totally-unknown", resolver.Resolve("  Totally_Unknown "))
	assert.Equal(t, "", resolver.Resolve(""))
}
