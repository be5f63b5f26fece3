package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/candies-app/candies/internal/candy"
	"github.com/candies-app/candies/internal/candy/repository"
	"github.com/candies-app/candies/pkg/metrics"
)

const maxFieldLen = 200

var (
	ErrNotFound     = repository.ErrNotFound
	ErrInvalidInput = errors.New("invalid input")
)

// Service implements the candy operations on top of a Repository.
type Service struct {
	repo repository.Repository
}

func NewService(r repository.Repository) *Service {
	return &Service{repo: r}
}

// NewMemoryService returns a Service backed by a fresh in-memory repository.
func NewMemoryService() *Service {
	return NewService(repository.NewMemoryRepo())
}

func (s *Service) List(ctx context.Context) ([]*candy.Candy, error) {
	list, err := s.repo.List(ctx)
	record("list", err)
	return list, err
}

// Create stores a new record with a freshly assigned id and returns it.
func (s *Service) Create(ctx context.Context, in candy.Input) (*candy.Candy, error) {
	if err := validate("name", in.Name); err != nil {
		record("create", err)
		return nil, err
	}
	if err := validate("color", in.Color); err != nil {
		record("create", err)
		return nil, err
	}
	c := &candy.Candy{Name: in.Name, Color: in.Color}
	err := s.repo.Create(ctx, c)
	record("create", err)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns ErrNotFound when no record has the given id.
func (s *Service) Get(ctx context.Context, id string) (*candy.Candy, error) {
	c, err := s.repo.Get(ctx, id)
	record("get", err)
	return c, err
}

// Update applies the supplied fields in a single store call, so concurrent
// updates of different fields both take effect.
func (s *Service) Update(ctx context.Context, id string, p candy.Patch) (*candy.Candy, error) {
	if p.Name != nil {
		if err := validate("name", *p.Name); err != nil {
			record("update", err)
			return nil, err
		}
	}
	if p.Color != nil {
		if err := validate("color", *p.Color); err != nil {
			record("update", err)
			return nil, err
		}
	}
	c, err := s.repo.Update(ctx, id, p)
	record("update", err)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the record if it exists. Deleting a missing id succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	record("delete", err)
	return err
}

func validate(field, v string) error {
	if utf8.RuneCountInString(v) > maxFieldLen {
		return fmt.Errorf("%w: %s longer than %d characters", ErrInvalidInput, field, maxFieldLen)
	}
	if !utf8.ValidString(v) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidInput, field)
	}
	return nil
}

func record(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case errors.Is(err, ErrInvalidInput):
		result = "invalid"
	default:
		result = "error"
	}
	metrics.CandyOperations.WithLabelValues(op, result).Inc()
}
