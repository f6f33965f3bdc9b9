package book

import (
	"context"
	"fmt"
	"net/http"

	"bookgateway/internal/platform/upstream"

	"go.uber.org/zap"
)

// Endpoint is the upstream collection path for books.
const Endpoint = "api/v1/Books"

var _ Dispatcher = (*Service)(nil)

// Service provides book operations backed by the upstream API.
type Service struct {
	client   Upstream
	endpoint string
	logger   *zap.Logger
}

// NewService creates a new book service.
func NewService(client Upstream, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		endpoint: Endpoint,
		logger:   logger.Named("book"),
	}
}

// ListAll returns every book known upstream.
func (s *Service) ListAll(ctx context.Context) ([]Book, error) {
	resp, err := s.client.Get(ctx, s.endpoint)
	if err := s.check("list", 0, resp, err); err != nil {
		return nil, err
	}

	var books []Book
	if err := resp.Decode(&books); err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// GetByID returns a book by its id.
func (s *Service) GetByID(ctx context.Context, id int) (Book, error) {
	resp, err := s.client.Get(ctx, s.itemPath(id))
	if err := s.check("get", id, resp, err); err != nil {
		return Book{}, err
	}

	var b *Book
	if err := resp.Decode(&b); err != nil {
		return Book{}, err
	}
	if b == nil {
		return Book{}, ErrNotFound
	}
	return *b, nil
}

// Create stores b upstream and returns the stored entity.
func (s *Service) Create(ctx context.Context, b Book) (Book, error) {
	resp, err := s.client.PostJSON(ctx, s.endpoint, b)
	if err := s.check("create", b.ID, resp, err); err != nil {
		return Book{}, err
	}

	var created *Book
	if err := resp.Decode(&created); err != nil {
		return Book{}, err
	}
	if created == nil {
		return b, nil
	}
	return *created, nil
}

// Update replaces the book stored under id.
func (s *Service) Update(ctx context.Context, id int, b Book) error {
	resp, err := s.client.PutJSON(ctx, s.itemPath(id), b)
	return s.check("update", id, resp, err)
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int) error {
	resp, err := s.client.Delete(ctx, s.itemPath(id))
	return s.check("delete", id, resp, err)
}

func (s *Service) itemPath(id int) string {
	return fmt.Sprintf("%s/%d", s.endpoint, id)
}

// check turns a client result into the error contract of Dispatcher.
func (s *Service) check(op string, id int, resp *upstream.Response, err error) error {
	if err == nil {
		err = resp.Err()
	}
	if err == nil {
		return nil
	}

	s.logger.Warn("book upstream call failed",
		zap.String("op", op),
		zap.Int("book_id", id),
		zap.Error(err),
	)

	if upstream.StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%s book %d: %w: %w", op, id, ErrNotFound, err)
	}
	return fmt.Errorf("%s book: %w", op, err)
}
