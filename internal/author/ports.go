package author

import (
	"context"

	"bookgateway/internal/platform/upstream"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=author

// Upstream is the subset of the upstream client the author proxy needs.
type Upstream interface {
	Get(ctx context.Context, path string) (*upstream.Response, error)
	PostJSON(ctx context.Context, path string, body any) (*upstream.Response, error)
	PutJSON(ctx context.Context, path string, body any) (*upstream.Response, error)
	Delete(ctx context.Context, path string) (*upstream.Response, error)
}
