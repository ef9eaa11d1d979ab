package handlers

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"birthdayFundAPI/internal/contribution"
	"birthdayFundAPI/middleware"
	"birthdayFundAPI/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

func renderTemplate(w http.ResponseWriter, r *http.Request, name string, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, injectCommonTemplateData(r, payload)); err != nil {
		middleware.Logger(r.Context()).WithError(err).WithField("template", name).Error("template render failed")
	}
}

func renderHTTPError(log logrus.FieldLogger, r *http.Request, w http.ResponseWriter, err error, code int) {
	log.WithField("error", err).Error("request error")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	if templateErr := templates.ExecuteTemplate(w, "error", injectCommonTemplateData(r, map[string]interface{}{
		"title":       http.StatusText(code),
		"error":       err.Error(),
		"status_code": code,
		"status":      http.StatusText(code),
	})); templateErr != nil {
		log.Println(templateErr)
	}
}

func injectCommonTemplateData(r *http.Request, payload map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"request_id":  middleware.RequestID(r.Context()),
		"currentYear": time.Now().Year(),
	}
	if lc, ok := middleware.GetLastContributor(r.Context()); ok {
		data["last_contributor"] = lc
	}

	for k, v := range payload {
		data[k] = v
	}

	return data
}

// parseAmount reads a whole-unit amount from a form or query value and returns cents.
func parseAmount(raw string) (int64, error) {
	units, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "amount %q is not a whole number", raw)
	}
	if units <= 0 || units > contribution.MaxAmountUnits {
		return 0, errors.Wrapf(services.ErrInvalidAmount, "amount %d", units)
	}
	return contribution.CentsFromUnits(units), nil
}

func contributorName(raw string) string {
	if name := strings.TrimSpace(raw); name != "" {
		return name
	}
	return contribution.AnonymousName
}

func formatUnits(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
