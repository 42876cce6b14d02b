package slug

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// aliases maps known legacy URL slugs to their provider slugs. The
// expand-footprint goal shipped under three different path prefixes over the
// years; the rest are one-off renames that predate the registry.
var aliases = map[string]string{
	"expand":                  "expand-footprint",
	"footprint":               "expand-footprint",
	"expand-your-footprint":   "expand-footprint",
	"grow-footprint":          "expand-footprint",
	"smart-vending-locker":    "locker",
	"carwash":                 "car-wash",
	"increase-revenue-growth": "increase-revenue",
}

// HardcodedAlias looks up the fixed legacy alias table. The second return is
// false when no alias is registered for the slug.
func HardcodedAlias(s string) (string, bool) {
	target, ok := aliases[Normalize(s)]

	return target, ok
}

// Variations generates candidate provider slugs for a raw URL segment, in
// priority order. Consumers try candidates front to back and stop on the
// first hit, so order is significant. Duplicates are removed.
//
// The candidate set covers the drift we have actually observed in content:
// the raw and decoded forms, the normalized form, the "-vending" suffix and
// "vending-" prefix added or stripped, and a trailing-s plural toggle.
func Variations(raw string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 8)

	add := func(candidates ...string) {
		for _, c := range candidates {
			if c == "" {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	norm := Normalize(raw)
	add(raw, Decode(raw), norm)

	if norm == "" {
		return out
	}

	// -vending suffix toggle
	if stripped, ok := strings.CutSuffix(norm, "-vending"); ok {
		add(stripped)
	} else {
		add(norm + "-vending")
	}

	// vending- prefix toggle
	if stripped, ok := strings.CutPrefix(norm, "vending-"); ok {
		add(stripped)
	} else {
		add("vending-" + norm)
	}

	// plural toggle
	if stripped, ok := strings.CutSuffix(norm, "s"); ok {
		add(stripped)
	} else {
		add(norm + "s")
	}

	return out
}

// Registry is the session-scoped record of observed slug renames. It maps
// URL-facing slugs to provider slugs and back, is safe for concurrent use,
// and is never persisted; its contents live and die with the process.
//
// Construct one per application and inject it; there is no package-level
// instance.
type Registry struct {
	mu       sync.RWMutex
	forward  map[string]string // URL slug -> provider slug
	backward map[string]string // provider slug -> URL slug
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		forward:  make(map[string]string),
		backward: make(map[string]string),
	}
}

// RegisterSlugChange records that urlSlug now resolves to providerSlug.
// Both directions are recorded so reverse lookups (building links from
// provider data) stay consistent. Re-registering overwrites.
func (r *Registry) RegisterSlugChange(urlSlug, providerSlug string) {
	from := Normalize(urlSlug)
	to := Normalize(providerSlug)
	if from == "" || to == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.forward[from] = to
	r.backward[to] = from
}

// ProviderSlug returns the registered provider slug for a URL slug.
func (r *Registry) ProviderSlug(urlSlug string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	target, ok := r.forward[Normalize(urlSlug)]

	return target, ok
}

// URLSlug returns the registered URL slug for a provider slug.
func (r *Registry) URLSlug(providerSlug string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, ok := r.backward[Normalize(providerSlug)]

	return source, ok
}

// Mappings returns a copy of the forward mapping for diagnostics.
func (r *Registry) Mappings() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]string, len(r.forward))
	for k, v := range r.forward {
		out[k] = v
	}

	return out
}

// Resolver produces the best-guess provider slug for a raw URL segment.
type Resolver struct {
	registry *Registry
	logger   *zap.Logger
}

// NewResolver creates a Resolver backed by the given registry.
func NewResolver(registry *Registry, logger *zap.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		logger:   logger,
	}
}

// Resolve returns the best-guess provider slug for raw. Precedence:
// registered rename, hardcoded alias, normalized input. Resolution never
// fails; when nothing matches the normalized input comes back unchanged so
// callers can still attempt an exact-match query.
func (r *Resolver) Resolve(raw string) string {
	norm := Normalize(raw)

	if target, ok := r.registry.ProviderSlug(norm); ok {
		r.logger.Debug("slug resolved via registry",
			zap.String("raw", raw),
			zap.String("resolved", target),
		)

		return target
	}

	if target, ok := HardcodedAlias(norm); ok {
		r.logger.Debug("slug resolved via alias table",
			zap.String("raw", raw),
			zap.String("resolved", target),
		)

		return target
	}

	return norm
}

// Variations delegates to the package-level generator; exposed on the
// resolver so façade code needs a single collaborator.
func (r *Resolver) Variations(raw string) []string {
	return Variations(raw)
}
