package book

import (
	"context"

	"bookgateway/internal/platform/upstream"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=book

// Upstream is the subset of the upstream client the book proxy needs.
type Upstream interface {
	Get(ctx context.Context, path string) (*upstream.Response, error)
	PostJSON(ctx context.Context, path string, body any) (*upstream.Response, error)
	PutJSON(ctx context.Context, path string, body any) (*upstream.Response, error)
	Delete(ctx context.Context, path string) (*upstream.Response, error)
}

// Dispatcher is what the HTTP layer calls for book operations. Failures
// are returned as errors: ErrNotFound for an upstream 404, an
// *upstream.StatusError for other statuses and an *upstream.TransportError
// when the upstream could not be reached.
type Dispatcher interface {
	ListAll(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id int) (Book, error)
	Create(ctx context.Context, b Book) (Book, error)
	Update(ctx context.Context, id int, b Book) error
	Delete(ctx context.Context, id int) error
}
