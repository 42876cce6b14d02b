// Mock Contentful Delivery API server for local development. Serves a canned
// entry graph from data.json on the same paths the real CDA exposes.
package main

import (
	_ "embed"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

//go:embed data.json
var jsonData []byte

type sys struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	ContentType *struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
	} `json:"contentType,omitempty"`
}

type entry struct {
	Sys    sys            `json:"sys"`
	Fields map[string]any `json:"fields"`
}

type document struct {
	Total    int             `json:"total"`
	Items    []entry         `json:"items"`
	Includes json.RawMessage `json:"includes,omitempty"`
}

func main() {
	var doc document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		log.Fatalf("[Mock CDA] bad data.json: %v", err)
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (50-200ms)
		time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

		switch {
		case strings.HasSuffix(r.URL.Path, "/entries"):
			serveEntries(w, r, doc)
		case strings.Contains(r.URL.Path, "/entries/"):
			serveEntry(w, r, doc)
		default:
			http.NotFound(w, r)
		}

		log.Printf("[Mock CDA] %s %s", r.Method, r.URL.String())
	})

	log.Println("Mock Contentful CDA running on :8090")
	server := &http.Server{
		Addr:         ":8090",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}

// serveEntries filters the canned graph the way the real API does: by
// content type, slug and sys.id. Includes are returned whole; the client
// resolves links by ID and ignores the rest.
func serveEntries(w http.ResponseWriter, r *http.Request, doc document) {
	q := r.URL.Query()
	contentType := q.Get("content_type")
	slug := q.Get("fields.slug")
	id := q.Get("sys.id")
	machineType := q.Get("fields.type")

	var items []entry
	for _, e := range doc.Items {
		if contentType != "" && (e.Sys.ContentType == nil || e.Sys.ContentType.Sys.ID != contentType) {
			continue
		}
		if slug != "" && e.Fields["slug"] != slug {
			continue
		}
		if id != "" && e.Sys.ID != id {
			continue
		}
		if machineType != "" && e.Fields["type"] != machineType {
			continue
		}
		items = append(items, e)
	}

	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	writeJSON(w, document{Total: len(items), Items: items, Includes: doc.Includes})
}

func serveEntry(w http.ResponseWriter, r *http.Request, doc document) {
	parts := strings.Split(r.URL.Path, "/entries/")
	id := parts[len(parts)-1]

	for _, e := range doc.Items {
		if e.Sys.ID == id {
			writeJSON(w, e)

			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"sys":{"type":"Error","id":"NotFound"}}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Mock CDA] write error: %v", err)
	}
}
