package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"birthdayFundAPI/internal/gift"
)

const fallbackMessage = "The gift idea service is unavailable right now, so here are some of our favourites."

// TextGenerator turns a prompt into model output.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageSearcher returns up to count image URLs for a keyword and an empty list on any failure.
type ImageSearcher interface {
	Search(ctx context.Context, keyword string, count int) []string
}

type GiftService struct {
	generator       TextGenerator
	images          ImageSearcher
	log             logrus.FieldLogger
	generateTimeout time.Duration
	imageTimeout    time.Duration
}

// NewGiftService accepts a nil generator or image searcher; without a generator every
// request falls back, without images suggestions stay undecorated.
func NewGiftService(generator TextGenerator, images ImageSearcher, log logrus.FieldLogger) *GiftService {
	return &GiftService{
		generator:       generator,
		images:          images,
		log:             log,
		generateTimeout: 20 * time.Second,
		imageTimeout:    5 * time.Second,
	}
}

func (s *GiftService) Suggest(ctx context.Context, keyword string, budget float64) gift.Result {
	result := gift.Result{
		Keyword: keyword,
		Budget:  budget,
	}

	suggestions, err := s.generate(ctx, keyword, budget)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"keyword": keyword,
			"budget":  budget,
		}).WithError(err).Warn("gift generation failed, using fallback suggestions")

		result.Source = gift.SourceFallback
		result.Err = err
		result.Message = fallbackMessage
		result.Suggestions = gift.Fallback(keyword, budget)
	} else {
		result.Source = gift.SourceGenerated
		result.Suggestions = suggestions
	}

	s.decorate(ctx, keyword, result.Suggestions)
	return result
}

func (s *GiftService) generate(ctx context.Context, keyword string, budget float64) ([]gift.Suggestion, error) {
	if s.generator == nil {
		return nil, gift.ErrNoGenerator
	}

	ctx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	text, err := s.generator.Generate(ctx, gift.BuildPrompt(keyword, budget))
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}

	suggestions, err := gift.ParseSuggestions(text)
	if err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}
	return suggestions, nil
}

func (s *GiftService) decorate(ctx context.Context, keyword string, suggestions []gift.Suggestion) {
	if s.images == nil || len(suggestions) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.imageTimeout)
	defer cancel()

	urls := s.images.Search(ctx, keyword, len(suggestions))
	next := 0
	for i := range suggestions {
		if next >= len(urls) {
			return
		}
		if suggestions[i].ImageURL == "" {
			suggestions[i].ImageURL = urls[next]
			next++
		}
	}
}
