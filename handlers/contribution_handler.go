package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"

	"birthdayFundAPI/internal/contribution"
	"birthdayFundAPI/middleware"
	"birthdayFundAPI/services"
)

type ContributionHandler struct {
	contributionService *services.ContributionService
	paymentService      *services.PaymentService
	sessions            sessions.Store
	currency            string
}

func NewContributionHandler(contributionService *services.ContributionService, paymentService *services.PaymentService, store sessions.Store, currency string) *ContributionHandler {
	return &ContributionHandler{
		contributionService: contributionService,
		paymentService:      paymentService,
		sessions:            store,
		currency:            strings.ToUpper(currency),
	}
}

func (h *ContributionHandler) Index(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "index", map[string]interface{}{
		"title":    "Contribute",
		"currency": h.currency,
	})
}

func (h *ContributionHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	log := middleware.Logger(r.Context())

	amountCents, err := parseAmount(r.FormValue("amount"))
	if err != nil {
		renderHTTPError(log, r, w, err, http.StatusBadRequest)
		return
	}
	name := contributorName(r.FormValue("name"))

	q := url.Values{}
	q.Set("amount", contribution.FormatUnits(amountCents))
	q.Set("name", name)
	q.Set("checkout", uuid.NewString())
	http.Redirect(w, r, "/payment?"+q.Encode(), http.StatusSeeOther)
}

func (h *ContributionHandler) Payment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	log := middleware.Logger(ctx)

	amountCents, err := parseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		renderHTTPError(log, r, w, err, http.StatusBadRequest)
		return
	}
	name := contributorName(r.URL.Query().Get("name"))

	intent := h.paymentService.Prepare(ctx, r.URL.Query().Get("checkout"), name, amountCents)

	renderTemplate(w, r, "payment", map[string]interface{}{
		"title":          "Payment",
		"currency":       h.currency,
		"name":           name,
		"amount":         contribution.FormatUnits(amountCents),
		"amount_display": contribution.FormatCents(amountCents),
		"amount_cents":   amountCents,
		"intent":         intent,
		"options":        h.paymentService.Options(),
	})
}

func (h *ContributionHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	log := middleware.Logger(ctx)

	amountCents, err := parseAmount(r.FormValue("amount"))
	if err != nil {
		renderHTTPError(log, r, w, err, http.StatusBadRequest)
		return
	}

	c, err := h.contributionService.Record(ctx, contribution.RecordRequest{
		Name:          contributorName(r.FormValue("name")),
		AmountCents:   amountCents,
		PaymentMethod: paymentMethod(r.FormValue("method")),
		PaymentRef:    strings.TrimSpace(r.FormValue("payment_ref")),
	})
	if err != nil {
		renderHTTPError(log, r, w, errors.Wrap(err, "could not record contribution"), http.StatusInternalServerError)
		return
	}
	middleware.RecordContribution(c.PaymentMethod, c.AmountCents)

	lc := contribution.LastContributor{Name: c.Name, AmountCents: c.AmountCents}
	if err := middleware.SaveLastContributor(w, r, h.sessions, lc); err != nil {
		log.WithError(err).Warn("failed to save session")
	}

	next := "/success"
	if r.FormValue("next") == "contributions" {
		next = "/contributions"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *ContributionHandler) Success(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "success", map[string]interface{}{
		"title":    "Thank you",
		"currency": h.currency,
	})
}

func (h *ContributionHandler) Contributions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	log := middleware.Logger(ctx)

	summary, err := h.contributionService.Summary(ctx)
	if err != nil {
		renderHTTPError(log, r, w, errors.Wrap(err, "could not load contributions"), http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "contributions", map[string]interface{}{
		"title":    "Contributions",
		"currency": h.currency,
		"summary":  summary,
	})
}

func (h *ContributionHandler) ListContributions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.contributionService.Summary(ctx)
	if err != nil {
		middleware.Logger(ctx).WithError(err).Error("failed to load contributions")
		respondWithError(w, http.StatusInternalServerError, "contributions are unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

func (h *ContributionHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.contributionService.Ping(ctx); err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "contribution store unavailable",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "birthday-fund-api",
	})
}

func paymentMethod(raw string) string {
	if strings.TrimSpace(raw) == contribution.MethodCash {
		return contribution.MethodCash
	}
	return contribution.MethodCard
}
