package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"birthdayFundAPI/internal/gift"
	"birthdayFundAPI/middleware"
	"birthdayFundAPI/services"
)

type GiftHandler struct {
	giftService         *services.GiftService
	contributionService *services.ContributionService
	currency            string
}

func NewGiftHandler(giftService *services.GiftService, contributionService *services.ContributionService, currency string) *GiftHandler {
	return &GiftHandler{
		giftService:         giftService,
		contributionService: contributionService,
		currency:            strings.ToUpper(currency),
	}
}

func (h *GiftHandler) GiftKeyword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	log := middleware.Logger(ctx)

	budget, err := h.contributionService.Budget(ctx)
	if err != nil {
		renderHTTPError(log, r, w, errors.Wrap(err, "could not compute budget"), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "gift_keyword", map[string]interface{}{
		"title":           "Gift ideas",
		"currency":        h.currency,
		"budget_display":  formatUnits(budget),
		"default_keyword": gift.KeywordForBudget(budget),
		"keywords":        gift.PresetKeywords,
	})
}

func (h *GiftHandler) GiftSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	log := middleware.Logger(ctx)

	result, err := h.suggest(ctx, r)
	if err != nil {
		renderHTTPError(log, r, w, errors.Wrap(err, "could not compute budget"), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "gift_suggestions", map[string]interface{}{
		"title":          "Gift ideas",
		"currency":       h.currency,
		"budget_display": formatUnits(result.Budget),
		"result":         result,
	})
}

func (h *GiftHandler) GiftSuggestionsJSON(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := h.suggest(ctx, r)
	if err != nil {
		middleware.Logger(ctx).WithError(err).Error("failed to compute budget")
		respondWithError(w, http.StatusInternalServerError, "budget is unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (h *GiftHandler) suggest(ctx context.Context, r *http.Request) (gift.Result, error) {
	budget, err := h.contributionService.Budget(ctx)
	if err != nil {
		return gift.Result{}, err
	}

	keyword := gift.ResolveKeyword(r.FormValue("keyword"), r.FormValue("custom_keyword"), budget)
	result := h.giftService.Suggest(ctx, keyword, budget)
	middleware.RecordGiftSuggestion(string(result.Source))

	return result, nil
}
