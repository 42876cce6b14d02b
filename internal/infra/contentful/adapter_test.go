package contentful

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vending-content-service/internal/domain"
)

// newTestMachineAdapter wires an adapter against an intercepted HTTP client.
func newTestMachineAdapter(t *testing.T) (*MachineAdapter, *ClientProvider) {
	t.Helper()

	provider := NewClientProvider(ClientConfig{
		SpaceID:     "space1",
		AccessToken: "token1",
	}, 0, zap.NewNop())

	client, err := provider.Client()
	require.NoError(t, err)
	httpmock.ActivateNonDefault(client.Transport().GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)

	adapter := NewMachineAdapter(provider, NewTransformer(zap.NewNop()), zap.NewNop())

	return adapter, provider
}

// TestMachineAdapter_WritesBlocked: every mutating operation fails with the
// sentinel and never touches the network.
func TestMachineAdapter_WritesBlocked(t *testing.T) {
	adapter, _ := newTestMachineAdapter(t)
	ctx := context.Background()

	err := adapter.Create(ctx, &domain.Machine{Slug: "new-machine"})
	assert.ErrorIs(t, err, domain.ErrWriteDisabled)

	err = adapter.Update(ctx, &domain.Machine{ID: "m1"})
	assert.ErrorIs(t, err, domain.ErrWriteDisabled)

	err = adapter.Delete(ctx, "m1")
	assert.ErrorIs(t, err, domain.ErrWriteDisabled)

	clone, err := adapter.Clone(ctx, "m1")
	assert.Nil(t, clone)
	assert.ErrorIs(t, err, domain.ErrWriteDisabled)

	var wde *domain.WriteDisabledError
	require.ErrorAs(t, err, &wde)
	assert.Equal(t, "clone", wde.Operation)
	assert.Equal(t, domain.KindMachine, wde.Kind)

	assert.Zero(t, httpmock.GetTotalCallCount())
}

// TestMachineAdapter_GetBySlug_QueryShape pins the exact-match request: slug
// filter, limit 1, detail include depth.
func TestMachineAdapter_GetBySlug_QueryShape(t *testing.T) {
	adapter, _ := newTestMachineAdapter(t)

	var captured map[string][]string
	httpmock.RegisterResponder("GET", testEntriesURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req.URL.Query()

			return jsonResponse(200, `{"total": 0, "items": []}`), nil
		})

	machine, err := adapter.GetBySlug(context.Background(), "combo-max")
	require.NoError(t, err)
	assert.Nil(t, machine)

	require.NotNil(t, captured)
	assert.Equal(t, []string{"machine"}, captured["content_type"])
	assert.Equal(t, []string{"combo-max"}, captured["fields.slug"])
	assert.Equal(t, []string{"1"}, captured["limit"])
	assert.Equal(t, []string{"3"}, captured["include"])
}

// TestMachineAdapter_GetAll_SlugMatchShape pins the loose-match fallback
// request: match operator on the slug field, list include depth, broad limit.
// This is the query the lookup ladder issues when the exact slug query missed.
func TestMachineAdapter_GetAll_SlugMatchShape(t *testing.T) {
	adapter, _ := newTestMachineAdapter(t)

	var captured map[string][]string
	httpmock.RegisterResponder("GET", testEntriesURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req.URL.Query()

			return jsonResponse(200, `{
				"total": 1,
				"items": [
					{"sys": {"id": "m1", "type": "Entry"}, "fields": {"slug": "combo-max", "visible": true}}
				]
			}`), nil
		})

	machines, err := adapter.GetAll(context.Background(), domain.ListFilters{Slug: "combo-max"})
	require.NoError(t, err)
	require.Len(t, machines, 1)
	assert.Equal(t, "combo-max", machines[0].Slug)

	require.NotNil(t, captured)
	assert.Equal(t, []string{"combo-max"}, captured["fields.slug[match]"])
	assert.Empty(t, captured["fields.slug"])
	assert.Equal(t, []string{"1000"}, captured["limit"])
	assert.Equal(t, []string{"2"}, captured["include"])
}

// TestMachineAdapter_GetAll_Filtering: type is pushed server-side, the
// visibility flags filter client-side after transformation.
func TestMachineAdapter_GetAll_Filtering(t *testing.T) {
	adapter, _ := newTestMachineAdapter(t)

	var captured map[string][]string
	httpmock.RegisterResponder("GET", testEntriesURL,
		func(req *http.Request) (*http.Response, error) {
			captured = req.URL.Query()

			return jsonResponse(200, `{
				"total": 3,
				"items": [
					{"sys": {"id": "m1", "type": "Entry"}, "fields": {"slug": "visible-machine", "visible": true, "showOnHomepage": true}},
					{"sys": {"id": "m2", "type": "Entry"}, "fields": {"slug": "hidden-machine", "visible": false}},
					{"sys": {"id": "m3", "type": "Entry"}, "fields": {"slug": "default-machine"}}
				]
			}`), nil
		})

	machines, err := adapter.GetAll(context.Background(), domain.ListFilters{
		VisibleOnly: true,
		Type:        domain.MachineTypeVending,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"vending"}, captured["fields.type"])

	// m2 is filtered out, m3's absent flag defaults to visible
	require.Len(t, machines, 2)
	assert.Equal(t, "visible-machine", machines[0].Slug)
	assert.Equal(t, "default-machine", machines[1].Slug)

	homepage, err := adapter.GetAll(context.Background(), domain.ListFilters{HomepageOnly: true})
	require.NoError(t, err)
	require.Len(t, homepage, 1)
	assert.Equal(t, "visible-machine", homepage[0].Slug)
}

// TestMachineAdapter_GetAll_FailureInvalidatesHandle: the cached client is
// dropped after a failed query so the next call starts fresh.
func TestMachineAdapter_GetAll_FailureInvalidatesHandle(t *testing.T) {
	adapter, provider := newTestMachineAdapter(t)

	stale, err := provider.Client()
	require.NoError(t, err)

	httpmock.RegisterResponder("GET", testEntriesURL,
		jsonResponder(500, `{"sys": {"type": "Error"}}`))

	_, err = adapter.GetAll(context.Background(), domain.ListFilters{})
	require.Error(t, err)

	var provErr *domain.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "getAll", provErr.Operation)
	assert.Equal(t, domain.KindMachine, provErr.Kind)

	fresh, err := provider.Client()
	require.NoError(t, err)
	assert.NotSame(t, stale, fresh)
}

// TestMachineAdapter_ResolveMachineImages refetches only imageless summaries
// and keeps partial data when the refetch misses.
func TestMachineAdapter_ResolveMachineImages(t *testing.T) {
	adapter, _ := newTestMachineAdapter(t)

	httpmock.RegisterResponder("GET", testEntriesURL,
		func(req *http.Request) (*http.Response, error) {
			if id := req.URL.Query().Get("sys.id"); id == "m2" {
				return jsonResponse(200, `{
					"total": 1,
					"items": [
						{"sys": {"id": "m2", "type": "Entry"},
						 "fields": {"slug": "barista-one", "images": [{"sys": {"type": "Link", "linkType": "Asset", "id": "a1"}}]}}
					],
					"includes": {
						"Asset": [
							{"sys": {"id": "a1", "type": "Asset"},
							 "fields": {"title": "front", "file": {"url": "//images.ctfassets.net/barista.jpg"}}}
						]
					}
				}`), nil
			}

			return jsonResponse(200, `{"total": 0, "items": []}`), nil
		})

	withImage := domain.MachineSummary{
		ID:     "m1",
		Slug:   "combo-max",
		Images: []domain.ContentImage{{ID: "a0", URL: "https://images.ctfassets.net/combo.jpg"}},
	}
	needsFetch := domain.MachineSummary{ID: "m2", Slug: "barista-one"}
	ghost := domain.MachineSummary{ID: "m9", Slug: "gone"}

	resolved := adapter.ResolveMachineImages(context.Background(),
		[]domain.MachineSummary{withImage, needsFetch, ghost})

	require.Len(t, resolved, 3)

	// already-complete summary passes through untouched
	assert.Equal(t, withImage.Images, resolved[0].Images)

	// imageless summary gains the refetched images
	require.Len(t, resolved[1].Images, 1)
	assert.Equal(t, "https://images.ctfassets.net/barista.jpg", resolved[1].Images[0].URL)

	// failed refetch keeps the partial summary
	assert.Equal(t, "gone", resolved[2].Slug)
	assert.False(t, resolved[2].HasImage())

	// only the imageless summaries cost a network call
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}
