// Package vectors provides semantic similarity search via Qdrant.
// Goals and asks are indexed in separate collections; queries embed the
// signal text and return payload-tagged hits.
package vectors

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/founderlink/founderlink/internal/core"
)

// Collection names
const (
	CollectionGoals = "goals"
	CollectionAsks  = "asks"
)

// Payload keys attached to every indexed signal
const (
	PayloadUserID   = "user_id"
	PayloadText     = "text"
	PayloadKind     = "kind"
	PayloadCategory = "category"
)

// Embedder turns text into a query vector. Model internals live elsewhere.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Store wraps the Qdrant client for signal search and indexing
type Store struct {
	client *qdrant.Client
	embed  Embedder
}

// Config for the vector store
type Config struct {
	Host   string // Qdrant host, default "localhost"
	Port   int    // Qdrant gRPC port, default 6334
	UseTLS bool
}

// NewStore creates a vector store backed by Qdrant.
func NewStore(cfg Config, embed Embedder) (*Store, error) {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 6334
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Qdrant: %w", err)
	}

	return &Store{client: client, embed: embed}, nil
}

// Close closes the Qdrant connection
func (s *Store) Close() error {
	return s.client.Close()
}

// CollectionFor maps a signal kind to its collection.
func CollectionFor(kind core.SignalKind) string {
	if kind == core.SignalAsk {
		return CollectionAsks
	}
	return CollectionGoals
}

// EnsureCollections creates the goal and ask collections if missing.
func (s *Store) EnsureCollections(ctx context.Context, dimension uint64) error {
	for _, name := range []string{CollectionGoals, CollectionAsks} {
		exists, err := s.client.CollectionExists(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to check collection %s: %w", name, err)
		}
		if exists {
			continue
		}

		err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: name,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     dimension,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	return nil
}

// IndexSignal embeds and upserts one signal into its collection.
func (s *Store) IndexSignal(ctx context.Context, sig core.Signal) error {
	vector, err := s.embed.Embed(ctx, sig.Text)
	if err != nil {
		return fmt.Errorf("embed signal %s: %w", sig.ID, err)
	}

	payload := map[string]interface{}{
		PayloadUserID: string(sig.OwnerID),
		PayloadText:   sig.Text,
		PayloadKind:   string(sig.Kind),
	}
	if sig.Category != "" {
		payload[PayloadCategory] = sig.Category
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: CollectionFor(sig.Kind),
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDUUID(string(sig.ID)),
				Vectors: qdrant.NewVectors(vector...),
				Payload: toQdrantPayload(payload),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert signal %s: %w", sig.ID, err)
	}

	return nil
}

// RemoveSignal deletes a signal's vector, e.g. when it is deactivated.
func (s *Store) RemoveSignal(ctx context.Context, kind core.SignalKind, id core.SignalID) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: CollectionFor(kind),
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{
					Ids: []*qdrant.PointId{qdrant.NewIDUUID(string(id))},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete signal %s: %w", id, err)
	}

	return nil
}

// Query is one similarity search request
type Query struct {
	Text          string
	Kind          core.SignalKind
	Limit         int
	MinSimilarity float64
}

// Hit is one similarity search result
type Hit struct {
	SourceID   string
	Similarity float64
	Metadata   map[string]interface{}
}

// Search embeds the query text and returns hits above the similarity
// threshold from the collection for the given signal kind.
func (s *Store) Search(ctx context.Context, q Query) ([]Hit, error) {
	vector, err := s.embed.Embed(ctx, q.Text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	threshold := float32(q.MinSimilarity)
	results, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: CollectionFor(q.Kind),
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(q.Limit)),
		ScoreThreshold: &threshold,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{
			SourceID:   r.Id.GetUuid(),
			Similarity: float64(r.Score),
			Metadata:   fromQdrantPayload(r.Payload),
		}
	}

	return hits, nil
}

// Helper functions for payload conversion
func toQdrantPayload(payload map[string]interface{}) map[string]*qdrant.Value {
	result := make(map[string]*qdrant.Value)
	for k, v := range payload {
		switch val := v.(type) {
		case string:
			result[k] = qdrant.NewValueString(val)
		case int:
			result[k] = qdrant.NewValueInt(int64(val))
		case int64:
			result[k] = qdrant.NewValueInt(val)
		case float64:
			result[k] = qdrant.NewValueDouble(val)
		case bool:
			result[k] = qdrant.NewValueBool(val)
		}
	}
	return result
}

func fromQdrantPayload(payload map[string]*qdrant.Value) map[string]interface{} {
	result := make(map[string]interface{})
	for k, v := range payload {
		switch val := v.Kind.(type) {
		case *qdrant.Value_StringValue:
			result[k] = val.StringValue
		case *qdrant.Value_IntegerValue:
			result[k] = val.IntegerValue
		case *qdrant.Value_DoubleValue:
			result[k] = val.DoubleValue
		case *qdrant.Value_BoolValue:
			result[k] = val.BoolValue
		}
	}
	return result
}
