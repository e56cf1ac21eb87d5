// Package qdrant provides a vector store adapter backed by a Qdrant
// instance over gRPC. It owns the collection lifecycle: creation with
// cosine distance, dimension verification against the embedding model,
// and full clears for re-indexing.
package qdrant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/NikolaykoSergey/lifta-cli/internal/core/domain"
	"github.com/NikolaykoSergey/lifta-cli/internal/core/ports/driven"
	"github.com/NikolaykoSergey/lifta-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultHost       = "localhost"
	DefaultPort       = 6334
	DefaultCollection = "tech_docs"

	// DefaultTimeout bounds each call to the backend. Qdrant usually runs
	// locally, but a full upsert batch with wait enabled can take a while
	// on slow disks.
	DefaultTimeout = 30 * time.Second

	// addBatchSize bounds upsert request size so one oversized call cannot
	// stall the whole indexing run.
	addBatchSize = 256
)

// Payload keys stored with every point.
const (
	payloadContent = "content"
	payloadFile    = "file"
	payloadPage    = "page"
	payloadKind    = "kind"
)

// Config holds configuration for the Qdrant store.
type Config struct {
	// Host is the Qdrant host (default: localhost).
	Host string

	// Port is the Qdrant gRPC port (default: 6334).
	Port int

	// Collection is the collection name (default: tech_docs).
	Collection string

	// Timeout bounds each call to the backend (default: 30s).
	Timeout time.Duration
}

// Store talks to Qdrant over gRPC.
type Store struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	qdrant      pb.QdrantClient
	collection  string
	timeout     time.Duration
}

// New creates a Qdrant store. The connection is lazy; reachability is
// checked by Ping or the first call.
func New(cfg Config) (*Store, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial qdrant %s: %w", addr, err)
	}

	return &Store{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		qdrant:      pb.NewQdrantClient(conn),
		collection:  cfg.Collection,
		timeout:     cfg.Timeout,
	}, nil
}

// bound caps ctx with the per-call timeout. A shorter caller deadline
// still wins.
func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// EnsureCollection creates the collection when absent and verifies its
// dimensionality when present.
func (s *Store) EnsureCollection(ctx context.Context, dimensions int) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	info, err := s.collections.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: s.collection,
	})
	switch {
	case err == nil:
		existing := collectionDimensions(info)
		if existing != 0 && existing != dimensions {
			return fmt.Errorf("%w: collection %q holds %d-dimensional vectors, embedding model produces %d (run a full re-index)",
				domain.ErrDimensionMismatch, s.collection, existing, dimensions)
		}
		return nil
	case status.Code(err) == codes.NotFound:
		// Fall through to create.
	default:
		return fmt.Errorf("%w: %v", domain.ErrVectorStoreUnavailable, err)
	}

	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(dimensions),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: create collection %s: %v", domain.ErrVectorStoreUnavailable, s.collection, err)
	}

	logger.Info("created qdrant collection %q (%d dimensions, cosine)", s.collection, dimensions)
	return nil
}

// Add upserts fragments in bounded batches. A failed batch is logged and
// skipped; Add fails only when no batch landed at all.
func (s *Store) Add(ctx context.Context, fragments []domain.Fragment) error {
	if len(fragments) == 0 {
		return nil
	}

	var landed int
	var lastErr error
	for start := 0; start < len(fragments); start += addBatchSize {
		end := start + addBatchSize
		if end > len(fragments) {
			end = len(fragments)
		}

		if err := s.upsertBatch(ctx, fragments[start:end]); err != nil {
			logger.Warn("qdrant: batch %d-%d failed, skipping: %v", start, end, err)
			lastErr = err
			continue
		}
		landed += end - start
	}

	if landed == 0 && lastErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrVectorStoreUnavailable, lastErr)
	}
	return nil
}

// upsertBatch sends one bounded upsert request. Each batch gets its own
// deadline so a long run is not squeezed through a single budget.
func (s *Store) upsertBatch(ctx context.Context, fragments []domain.Fragment) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	points := make([]*pb.PointStruct, len(fragments))
	for i, f := range fragments {
		id := f.ID
		if id == "" {
			id = uuid.New().String()
		}

		points[i] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: id},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: f.Embedding},
				},
			},
			Payload: map[string]*pb.Value{
				payloadContent: {Kind: &pb.Value_StringValue{StringValue: f.Content}},
				payloadFile:    {Kind: &pb.Value_StringValue{StringValue: f.SourceFile}},
				payloadPage:    {Kind: &pb.Value_IntegerValue{IntegerValue: int64(f.Page)}},
				payloadKind:    {Kind: &pb.Value_StringValue{StringValue: string(f.Kind)}},
			},
		}
	}

	wait := true
	_, err := s.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         points,
	})
	return err
}

// Search returns the limit nearest fragments by cosine similarity.
func (s *Store) Search(ctx context.Context, query []float32, limit int) ([]domain.RetrievalResult, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	resp, err := s.points.Search(ctx, &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         query,
		Limit:          uint64(limit),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: search: %v", domain.ErrVectorStoreUnavailable, err)
	}

	results := make([]domain.RetrievalResult, 0, len(resp.GetResult()))
	for _, r := range resp.GetResult() {
		payload := r.GetPayload()
		results = append(results, domain.RetrievalResult{
			Fragment: domain.Fragment{
				ID:         r.GetId().GetUuid(),
				Content:    payload[payloadContent].GetStringValue(),
				SourceFile: payload[payloadFile].GetStringValue(),
				Page:       int(payload[payloadPage].GetIntegerValue()),
				Kind:       domain.ExtractionKind(payload[payloadKind].GetStringValue()),
			},
			Score: float64(r.GetScore()),
		})
	}
	return results, nil
}

// Clear drops the collection. The next EnsureCollection recreates it, so
// a clear followed by indexing also picks up dimension changes.
func (s *Store) Clear(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	_, err := s.collections.Delete(ctx, &pb.DeleteCollection{
		CollectionName: s.collection,
	})
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("%w: drop collection %s: %v", domain.ErrVectorStoreUnavailable, s.collection, err)
	}
	return nil
}

// Stats reports the collection's point count and dimensionality. A
// missing collection reports zeros rather than an error.
func (s *Store) Stats(ctx context.Context) (*driven.VectorStats, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	info, err := s.collections.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: s.collection,
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &driven.VectorStats{}, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrVectorStoreUnavailable, err)
	}

	return &driven.VectorStats{
		Points:     int(info.GetResult().GetPointsCount()),
		Dimensions: collectionDimensions(info),
	}, nil
}

// Ping validates the backend answers its health check.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	_, err := s.qdrant.HealthCheck(ctx, &pb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrVectorStoreUnavailable, err)
	}
	return nil
}

// Close closes the gRPC connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// collectionDimensions digs the vector size out of collection info.
func collectionDimensions(info *pb.GetCollectionInfoResponse) int {
	params := info.GetResult().GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return 0
	}
	return int(params.GetSize())
}
