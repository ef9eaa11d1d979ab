package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"birthdayFundAPI/internal/contribution"
)

var ErrInvalidAmount = errors.New("amount must be a positive whole number within the contribution limit")

type ContributionService struct {
	store ContributionStore
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewContributionService(store ContributionStore, log logrus.FieldLogger) *ContributionService {
	return &ContributionService{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

func (s *ContributionService) Record(ctx context.Context, req contribution.RecordRequest) (*contribution.Contribution, error) {
	if req.AmountCents <= 0 || req.AmountCents > contribution.MaxAmountCents {
		return nil, ErrInvalidAmount
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = contribution.AnonymousName
	}

	c := contribution.Contribution{
		ID:            uuid.New(),
		Name:          name,
		AmountCents:   req.AmountCents,
		PaymentMethod: req.PaymentMethod,
		PaymentRef:    req.PaymentRef,
		CreatedAt:     s.now(),
	}

	if err := s.store.Append(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to record contribution: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"contribution_id": c.ID,
		"amount_cents":    c.AmountCents,
		"method":          c.PaymentMethod,
	}).Info("contribution recorded")

	return &c, nil
}

func (s *ContributionService) Summary(ctx context.Context) (*contribution.Summary, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}

	total, err := contribution.SumCents(list)
	if err != nil {
		return nil, fmt.Errorf("failed to total contributions: %w", err)
	}

	return &contribution.Summary{
		Contributions: list,
		Count:         len(list),
		TotalCents:    total,
		Total:         contribution.FormatCents(total),
	}, nil
}

// Budget returns the collected total in whole currency units.
func (s *ContributionService) Budget(ctx context.Context) (float64, error) {
	total, err := s.store.TotalCents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to total contributions: %w", err)
	}
	return contribution.UnitsFromCents(total), nil
}

func (s *ContributionService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
