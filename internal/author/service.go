package author

import (
	"context"
	"fmt"
	"net/http"

	"bookgateway/internal/platform/upstream"

	"go.uber.org/zap"
)

// Endpoint is the upstream collection path for authors.
const Endpoint = "api/v1/Authors"

// Service proxies author operations to the upstream API. It never returns
// an error: failures are logged and degrade to an empty, unchanged or
// absent value, classified by the accompanying Outcome.
type Service struct {
	client   Upstream
	endpoint string
	logger   *zap.Logger
}

// NewService creates a new author service.
func NewService(client Upstream, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		endpoint: Endpoint,
		logger:   logger.Named("author"),
	}
}

// ListAll returns every author known upstream, or an empty slice on failure.
func (s *Service) ListAll(ctx context.Context) ([]Author, Outcome) {
	resp, err := s.client.Get(ctx, s.endpoint)
	if outcome, failure := classify(resp, err); !outcome.OK() {
		s.logFailure("list", 0, outcome, failure)
		return []Author{}, outcome
	}

	var authors []Author
	if err := resp.Decode(&authors); err != nil {
		s.logFailure("list", 0, OutcomeRejected, err)
		return []Author{}, OutcomeRejected
	}
	if authors == nil {
		authors = []Author{}
	}
	return authors, OutcomeOK
}

// GetByID returns the author with the given id. Any outcome other than
// OutcomeOK means the author is absent, whether upstream said 404 or could
// not be reached.
func (s *Service) GetByID(ctx context.Context, id int) (Author, Outcome) {
	resp, err := s.client.Get(ctx, s.itemPath(id))
	if outcome, failure := classify(resp, err); !outcome.OK() {
		s.logFailure("get", id, outcome, failure)
		return Author{}, outcome
	}

	var a *Author
	if err := resp.Decode(&a); err != nil {
		s.logFailure("get", id, OutcomeRejected, err)
		return Author{}, OutcomeRejected
	}
	if a == nil {
		return Author{}, OutcomeNotFound
	}
	return *a, OutcomeOK
}

// ListByBook returns the authors whose IDBook equals bookID, in upstream
// order. The upstream has no filter for this, so the full collection is
// fetched on every call.
func (s *Service) ListByBook(ctx context.Context, bookID int) ([]Author, Outcome) {
	all, outcome := s.ListAll(ctx)
	matched := make([]Author, 0, len(all))
	for _, a := range all {
		if a.IDBook == bookID {
			matched = append(matched, a)
		}
	}
	return matched, outcome
}

// Add creates the author upstream and returns the stored entity. When the
// call fails the input is returned unchanged.
func (s *Service) Add(ctx context.Context, a Author) (Author, Outcome) {
	resp, err := s.client.PostJSON(ctx, s.endpoint, a)
	if outcome, failure := classify(resp, err); !outcome.OK() {
		s.logFailure("add", a.ID, outcome, failure)
		return a, outcome
	}

	var created *Author
	if err := resp.Decode(&created); err != nil {
		s.logFailure("add", a.ID, OutcomeRejected, err)
		return a, OutcomeRejected
	}
	if created == nil {
		return a, OutcomeOK
	}
	return *created, OutcomeOK
}

// Update replaces the author stored under a.ID.
func (s *Service) Update(ctx context.Context, a Author) Outcome {
	resp, err := s.client.PutJSON(ctx, s.itemPath(a.ID), a)
	outcome, failure := classify(resp, err)
	if !outcome.OK() {
		s.logFailure("update", a.ID, outcome, failure)
	}
	return outcome
}

// Remove deletes the author with the given id.
func (s *Service) Remove(ctx context.Context, id int) Outcome {
	resp, err := s.client.Delete(ctx, s.itemPath(id))
	outcome, failure := classify(resp, err)
	if !outcome.OK() {
		s.logFailure("remove", id, outcome, failure)
	}
	return outcome
}

func (s *Service) itemPath(id int) string {
	return fmt.Sprintf("%s/%d", s.endpoint, id)
}

func (s *Service) logFailure(op string, id int, outcome Outcome, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("outcome", outcome.String()),
		zap.Error(err),
	}
	if id != 0 {
		fields = append(fields, zap.Int("author_id", id))
	}
	s.logger.Warn("author upstream call failed", fields...)
}

// classify maps a client result to an Outcome plus the error worth logging.
func classify(resp *upstream.Response, err error) (Outcome, error) {
	switch {
	case err != nil && upstream.IsTransport(err):
		return OutcomeUnavailable, err
	case err != nil:
		return OutcomeRejected, err
	case resp.IsSuccess():
		return OutcomeOK, nil
	case resp.StatusCode == http.StatusNotFound:
		return OutcomeNotFound, resp.Err()
	default:
		return OutcomeRejected, resp.Err()
	}
}
