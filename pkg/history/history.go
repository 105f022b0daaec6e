// Package history provides optional storage of render results.
//
// This package defines an interface for render-history storage with
// implementations for different backends:
//   - memory: In-memory storage for development/testing and the CLI
//   - mongo: MongoDB-backed storage for the preview server
//
// History is a display surface concern. The render pipeline itself never
// consults it; each render starts from fresh input.
//
// # Usage
//
// Create a store and record results:
//
//	// Development
//	store := history.NewMemoryStore(100)
//
//	// Server
//	store, err := history.NewMongoStore(ctx, "mongodb://localhost:27017", "mermend")
//
//	rec := history.NewRecord(result)
//	if err := store.Save(ctx, rec); err != nil {
//	    return err
//	}
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mermend/mermend/pkg/errors"
	"github.com/mermend/mermend/pkg/pipeline"
)

// DefaultLimit caps List when the caller passes a non-positive limit.
const DefaultLimit = 50

// Record is one stored render result.
type Record struct {
	ID         string    `json:"id" bson:"_id"`
	Title      string    `json:"title,omitempty" bson:"title,omitempty"`
	Tier       string    `json:"tier" bson:"tier"`
	Diagnostic string    `json:"diagnostic,omitempty" bson:"diagnostic,omitempty"`
	Document   string    `json:"document,omitempty" bson:"document,omitempty"`
	Markup     []byte    `json:"markup" bson:"markup"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// NewRecord builds a Record from a pipeline result with a fresh id.
func NewRecord(result *pipeline.Result) *Record {
	return &Record{
		ID:         uuid.NewString(),
		Title:      result.Title,
		Tier:       string(result.Tier),
		Diagnostic: result.Diagnostic,
		Document:   result.Document,
		Markup:     result.Markup,
		CreatedAt:  time.Now().UTC(),
	}
}

// Store is the interface for render-history backends.
type Store interface {
	// Save stores a record.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by id. Missing records return
	// errors.ErrCodeNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns the most recent records, newest first, up to limit.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// notFound builds the standard missing-record error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "history record %s not found", id)
}
