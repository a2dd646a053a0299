package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/adapter/repository/memory"
	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

func TestSynthesize_LastRecordWinsForShape(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	store.Append(ctx, domain.Record{
		ID: "1", Timestamp: time.Now().UTC(),
		Direction: domain.DirectionIncoming, Method: "POST", URL: "/api/orders",
		Status:       200,
		ResponseBody: map[string]any{"id": float64(1)},
	})
	store.Append(ctx, domain.Record{
		ID: "2", Timestamp: time.Now().UTC(),
		Direction: domain.DirectionIncoming, Method: "POST", URL: "/api/orders",
		Status:       200,
		ResponseBody: map[string]any{"id": float64(2), "note": "x"},
	})

	uc := NewSynthesizeAPIUseCase(store, "", discardLogger())
	doc, err := uc.Synthesize(ctx, ScopeInternal)
	if err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}

	item := doc.Paths.Value("/api/orders")
	if item == nil || item.Post == nil {
		t.Fatal("expected a POST operation for /api/orders")
	}
	resp := item.Post.Responses.Value("200")
	if resp == nil || resp.Value == nil {
		t.Fatal("expected a 200 response")
	}
	media := resp.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		t.Fatal("expected a JSON response schema")
	}

	props := media.Schema.Value.Properties
	if _, ok := props["id"]; !ok {
		t.Error("response schema missing 'id' property")
	}
	if _, ok := props["note"]; !ok {
		t.Error("response schema missing 'note' property: the second record's shape must win")
	}
}

func TestSynthesize_ScopeSelection(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	store.Append(ctx, domain.Record{ID: "in", Direction: domain.DirectionIncoming, Method: "GET", URL: "/api/orders", Status: 200})
	store.Append(ctx, domain.Record{ID: "page", Direction: domain.DirectionIncoming, Method: "GET", URL: "/dashboard", Status: 200})
	store.Append(ctx, domain.Record{ID: "out", Direction: domain.DirectionOutgoing, Method: "GET", URL: "https://backend.local/api/stats", Status: 200})
	store.Append(ctx, domain.Record{ID: "other", Direction: domain.DirectionOutgoing, Method: "GET", URL: "https://weather.example/api/now", Status: 200})

	uc := NewSynthesizeAPIUseCase(store, "https://backend.local", discardLogger())

	t.Run("internal keeps only incoming api paths", func(t *testing.T) {
		doc, err := uc.Synthesize(ctx, ScopeInternal)
		if err != nil {
			t.Fatalf("Synthesize() error: %v", err)
		}
		if doc.Paths.Value("/api/orders") == nil {
			t.Error("expected /api/orders in internal scope")
		}
		if doc.Paths.Value("/dashboard") != nil {
			t.Error("page route must not appear in internal scope")
		}
		if doc.Paths.Value("/api/stats") != nil {
			t.Error("outgoing traffic must not appear in internal scope")
		}
	})

	t.Run("backend keeps only matching-origin outgoing", func(t *testing.T) {
		doc, err := uc.Synthesize(ctx, ScopeBackend)
		if err != nil {
			t.Fatalf("Synthesize() error: %v", err)
		}
		if doc.Paths.Value("/api/stats") == nil {
			t.Error("expected backend-origin path in backend scope")
		}
		if doc.Paths.Value("/api/now") != nil {
			t.Error("other-origin outgoing must not appear in backend scope")
		}
		if doc.Paths.Value("/api/orders") != nil {
			t.Error("incoming traffic must not appear in backend scope")
		}
	})

	t.Run("all keeps outgoing of every origin", func(t *testing.T) {
		doc, err := uc.Synthesize(ctx, ScopeAll)
		if err != nil {
			t.Fatalf("Synthesize() error: %v", err)
		}
		if doc.Paths.Value("/api/stats") == nil {
			t.Error("expected backend-origin outgoing in unscoped document")
		}
		if doc.Paths.Value("/api/now") == nil {
			t.Error("expected foreign-origin outgoing in unscoped document: origin narrowing belongs to the backend scope only")
		}
		if doc.Paths.Value("/api/orders") == nil {
			t.Error("expected incoming traffic in unscoped document")
		}
	})

	t.Run("unconfigured upstream admits all outgoing", func(t *testing.T) {
		open := NewSynthesizeAPIUseCase(store, "", discardLogger())
		doc, err := open.Synthesize(ctx, ScopeBackend)
		if err != nil {
			t.Fatalf("Synthesize() error: %v", err)
		}
		if doc.Paths.Value("/api/now") == nil {
			t.Error("without a configured upstream, every outgoing record is backend traffic")
		}
	})
}

func TestSynthesize_QueryParamsAreUnionOverGroup(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	store.Append(ctx, domain.Record{ID: "1", Direction: domain.DirectionIncoming, Method: "GET", URL: "/api/orders?page=1", Status: 200})
	store.Append(ctx, domain.Record{ID: "2", Direction: domain.DirectionIncoming, Method: "GET", URL: "/api/orders?size=20&sort=desc", Status: 200})

	uc := NewSynthesizeAPIUseCase(store, "", discardLogger())
	doc, err := uc.Synthesize(ctx, ScopeInternal)
	if err != nil {
		t.Fatalf("Synthesize() error: %v", err)
	}

	op := doc.Paths.Value("/api/orders").Get
	if op == nil {
		t.Fatal("expected a GET operation")
	}

	var names []string
	for _, ref := range op.Parameters {
		names = append(names, ref.Value.Name)
	}
	want := []string{"page", "size", "sort"}
	if len(names) != len(want) {
		t.Fatalf("expected params %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected params %v in sorted order, got %v", want, names)
		}
	}

	// GET operations carry no request body.
	if op.RequestBody != nil {
		t.Error("GET operation must not carry a request body")
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	store.Append(ctx, domain.Record{
		ID: "1", Direction: domain.DirectionIncoming, Method: "POST", URL: "/api/orders?draft=1",
		Status:      201,
		RequestBody: map[string]any{"sku": "A-1", "qty": float64(2), "tags": []any{"express"}},
		ResponseBody: map[string]any{
			"id":      float64(7),
			"created": true,
			"buyer":   map[string]any{"name": "n", "city": nil},
		},
	})
	store.Append(ctx, domain.Record{ID: "2", Direction: domain.DirectionOutgoing, Method: "GET", URL: "https://backend.local/api/stats?date=2026-01-21", Status: 200, ResponseBody: []any{map[string]any{"count": float64(3)}}})

	uc := NewSynthesizeAPIUseCase(store, "https://backend.local", discardLogger())

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		doc, err := uc.Synthesize(ctx, ScopeAll)
		if err != nil {
			t.Fatalf("Synthesize() error: %v", err)
		}
		data, err := json.Marshal(doc)
		if err != nil {
			t.Fatalf("failed to marshal document: %v", err)
		}
		outputs = append(outputs, data)
	}

	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Error("two runs over an unchanged store produced different documents")
	}
}

func TestSynthesize_SchemaInference(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantType string
	}{
		{"string", "hello", "string"},
		{"number", float64(3.5), "number"},
		{"boolean", true, "boolean"},
		{"array", []any{"a"}, "array"},
		{"object", map[string]any{"k": "v"}, "object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := inferSchema(tt.value)
			if s.Type == nil || !s.Type.Is(tt.wantType) {
				t.Errorf("inferSchema(%v) type = %v, want %s", tt.value, s.Type, tt.wantType)
			}
		})
	}

	t.Run("null is nullable", func(t *testing.T) {
		if s := inferSchema(nil); !s.Nullable {
			t.Error("expected nullable schema for null sample")
		}
	})

	t.Run("empty array has untyped items", func(t *testing.T) {
		if s := inferSchema([]any{}); s.Items != nil {
			t.Error("expected no item schema for an empty array sample")
		}
	})

	t.Run("array items follow first element", func(t *testing.T) {
		s := inferSchema([]any{map[string]any{"id": float64(1)}})
		if s.Items == nil || s.Items.Value == nil || !s.Items.Value.Type.Is("object") {
			t.Error("expected object item schema")
		}
	})
}
