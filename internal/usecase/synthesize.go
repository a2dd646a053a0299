package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/HusenovAbdullo/LogisticReact-sub001/internal/domain"
)

// Scope selects which side of the traffic feeds the synthesized document.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeBackend  Scope = "backend"
	ScopeInternal Scope = "internal"
)

// internalAPIPrefix marks incoming paths that belong to this service's own
// API surface.
const internalAPIPrefix = "/api/"

// endpointKey identifies one logical endpoint derived from observed traffic.
type endpointKey struct {
	method string
	path   string
	tag    string
}

// SynthesizeAPIUseCase builds an OpenAPI document purely from captured
// traffic; no static route table is consulted. Given an unchanged store the
// output is byte-identical across runs.
type SynthesizeAPIUseCase struct {
	store        domain.RecordStore
	upstreamBase string
	logger       *slog.Logger
}

// NewSynthesizeAPIUseCase creates a new SynthesizeAPIUseCase. upstreamBase
// narrows the backend scope by origin; when empty, every outgoing record
// counts as backend traffic.
func NewSynthesizeAPIUseCase(store domain.RecordStore, upstreamBase string, logger *slog.Logger) *SynthesizeAPIUseCase {
	return &SynthesizeAPIUseCase{
		store:        store,
		upstreamBase: upstreamBase,
		logger:       logger.With("component", "synthesizer"),
	}
}

// Synthesize groups scoped records into endpoints and infers schemas from
// their sample payloads. The last record of each group is authoritative for
// body shapes; query parameters are the union over all group members.
func (uc *SynthesizeAPIUseCase) Synthesize(ctx context.Context, scope Scope) (*openapi3.T, error) {
	records, err := uc.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read record store: %w", err)
	}

	var keys []endpointKey
	groups := make(map[endpointKey][]domain.Record)
	for _, rec := range records {
		tag, ok := uc.classify(rec, scope)
		if !ok {
			continue
		}
		key := endpointKey{
			method: strings.ToUpper(rec.Method),
			path:   pathTemplate(rec.URL),
			tag:    tag,
		}
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], rec)
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Logistics Admin Observed API",
			Description: "Synthesized from captured HTTP traffic.",
			Version:     "1.0.0",
		},
		Paths: openapi3.NewPaths(),
	}

	for _, key := range keys {
		samples := groups[key]
		item := doc.Paths.Value(key.path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(key.path, item)
		}
		item.SetOperation(key.method, buildOperation(key, samples))
	}

	return doc, nil
}

// classify decides whether a record belongs to the scope and which tag it
// groups under.
func (uc *SynthesizeAPIUseCase) classify(rec domain.Record, scope Scope) (string, bool) {
	switch rec.Direction {
	case domain.DirectionOutgoing:
		if scope == ScopeInternal {
			return "", false
		}
		// Only the backend scope narrows by origin; unscoped keeps every
		// outgoing record, including calls to third-party providers.
		if scope == ScopeBackend && uc.upstreamBase != "" && !sameOrigin(rec.URL, uc.upstreamBase) {
			return "", false
		}
		return "backend", true
	case domain.DirectionIncoming:
		if scope == ScopeBackend {
			return "", false
		}
		if scope == ScopeInternal && !strings.HasPrefix(pathTemplate(rec.URL), internalAPIPrefix) {
			return "", false
		}
		return "internal", true
	default:
		return "", false
	}
}

func buildOperation(key endpointKey, samples []domain.Record) *openapi3.Operation {
	rep := samples[len(samples)-1] // most-recent-wins

	op := openapi3.NewOperation()
	op.Summary = fmt.Sprintf("Observed %s %s", key.method, key.path)
	op.Tags = []string{key.tag}

	for _, name := range queryParamUnion(samples) {
		param := openapi3.NewQueryParameter(name).WithSchema(openapi3.NewStringSchema())
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
	}

	if key.method != "GET" && key.method != "HEAD" && rep.RequestBody != nil {
		body := openapi3.NewRequestBody().WithJSONSchema(inferSchema(rep.RequestBody))
		body.Content["application/json"].Example = rep.RequestBody
		op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	status := rep.Status
	if status == 0 {
		status = 200
	}
	resp := openapi3.NewResponse().WithDescription("Observed response")
	if rep.ResponseBody != nil {
		resp = resp.WithJSONSchema(inferSchema(rep.ResponseBody))
		resp.Content["application/json"].Example = rep.ResponseBody
	}
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(status, &openapi3.ResponseRef{Value: resp}))

	return op
}

// inferSchema derives a structural schema from one decoded JSON sample.
// Arrays take their item shape from the first element; unknown values get
// an empty schema.
func inferSchema(v any) *openapi3.Schema {
	switch val := v.(type) {
	case nil:
		return &openapi3.Schema{Nullable: true}
	case bool:
		return &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeBoolean}}
	case string:
		return &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}
	case float64:
		return &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}}
	case int:
		return &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}}
	case []any:
		s := &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeArray}}
		if len(val) > 0 {
			s.Items = openapi3.NewSchemaRef("", inferSchema(val[0]))
		}
		return s
	case map[string]any:
		s := &openapi3.Schema{
			Type:       &openapi3.Types{openapi3.TypeObject},
			Properties: openapi3.Schemas{},
		}
		for k, pv := range val {
			s.Properties[k] = openapi3.NewSchemaRef("", inferSchema(pv))
		}
		return s
	default:
		return &openapi3.Schema{}
	}
}

// pathTemplate strips the query from a captured URL, tolerating malformed
// input.
func pathTemplate(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		return u.Path
	}
	if i := strings.Index(raw, "?"); i >= 0 {
		return raw[:i]
	}
	return raw
}

// queryParamUnion collects every query parameter name observed across the
// group, sorted for stable output.
func queryParamUnion(samples []domain.Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range samples {
		u, err := url.Parse(rec.URL)
		if err != nil {
			continue
		}
		for name := range u.Query() {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sameOrigin reports whether raw shares scheme and host with base. Relative
// URLs have no origin and never match.
func sameOrigin(raw, base string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	b, err := url.Parse(base)
	if err != nil {
		return false
	}
	return u.Scheme == b.Scheme && u.Host == b.Host
}
