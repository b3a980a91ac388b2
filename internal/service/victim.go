package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/msomdec/victim-store/internal/domain"
	"github.com/msomdec/victim-store/internal/validation"
)

// VictimService owns victim validation and delegates storage to a repository.
type VictimService struct {
	victims  domain.VictimRepository
	validate *validation.Validator
}

// NewVictimService creates a new VictimService.
func NewVictimService(victims domain.VictimRepository, validate *validation.Validator) *VictimService {
	return &VictimService{victims: victims, validate: validate}
}

// Any non-empty name and description are accepted.
const (
	nameRules        = "required"
	descriptionRules = "required"
)

type createVictimInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Create validates and stores a new victim. Both fields are required; every
// missing field is reported in the returned *domain.ValidationError.
func (s *VictimService) Create(ctx context.Context, name, description string) (*domain.Victim, error) {
	if err := s.validate.Struct(createVictimInput{Name: name, Description: description}); err != nil {
		return nil, err
	}

	victim := &domain.Victim{Name: name, Description: description}
	if err := s.victims.Create(ctx, victim); err != nil {
		return nil, fmt.Errorf("create victim: %w", err)
	}
	return victim, nil
}

// Get returns a victim by its ID.
func (s *VictimService) Get(ctx context.Context, id int64) (*domain.Victim, error) {
	return s.victims.GetByID(ctx, id)
}

// List returns all victims in insertion order.
func (s *VictimService) List(ctx context.Context) ([]domain.Victim, error) {
	victims, err := s.victims.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list victims: %w", err)
	}
	if victims == nil {
		victims = []domain.Victim{}
	}
	return victims, nil
}

// Update applies the supplied fields. Omitted fields are untouched; a
// supplied field must still be non-empty.
func (s *VictimService) Update(ctx context.Context, id int64, patch domain.VictimPatch) (*domain.Victim, error) {
	verr := &domain.ValidationError{}
	if patch.Name != nil {
		collect(verr, s.validate.Var("name", *patch.Name, nameRules))
	}
	if patch.Description != nil {
		collect(verr, s.validate.Var("description", *patch.Description, descriptionRules))
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if patch.Empty() {
		return s.victims.GetByID(ctx, id)
	}
	return s.victims.Update(ctx, id, patch)
}

// Delete removes a victim permanently.
func (s *VictimService) Delete(ctx context.Context, id int64) error {
	return s.victims.Delete(ctx, id)
}

// Lookup resolves a raw, caller-supplied id string to zero or one victims.
// Unknown ids yield an empty slice rather than ErrNotFound.
func (s *VictimService) Lookup(ctx context.Context, rawID string) ([]domain.Victim, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, domain.NewValidationError("id", "The id field must be an integer")
	}

	victim, err := s.victims.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Victim{}, nil
		}
		return nil, fmt.Errorf("lookup victim: %w", err)
	}
	return []domain.Victim{*victim}, nil
}

func collect(dst *domain.ValidationError, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		dst.Fields = append(dst.Fields, verr.Fields...)
	}
}
