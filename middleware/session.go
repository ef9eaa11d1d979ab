package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"birthdayFundAPI/internal/contribution"
)

const (
	sessionName        = "birthday-fund"
	sessionKeyName     = "last_name"
	sessionKeyAmount   = "last_amount_cents"
	sessionMaxAgeHours = 24 * 30
)

type ctxKeyContributor struct{}

// NewSessionStore builds the signed cookie store that holds the last contributor.
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAgeHours * 3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SessionMiddleware loads the session once and hands its contents to handlers through the
// request context, so handlers never read the cookie themselves.
func SessionMiddleware(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, sessionName)
			if err != nil {
				Logger(r.Context()).WithError(err).Debug("discarding unreadable session")
			}

			if lc, ok := lastContributorFrom(session); ok {
				r = r.WithContext(WithLastContributor(r.Context(), lc))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func lastContributorFrom(session *sessions.Session) (contribution.LastContributor, bool) {
	if session == nil {
		return contribution.LastContributor{}, false
	}
	name, ok := session.Values[sessionKeyName].(string)
	if !ok {
		return contribution.LastContributor{}, false
	}
	amount, _ := session.Values[sessionKeyAmount].(int64)
	return contribution.LastContributor{Name: name, AmountCents: amount}, true
}

func WithLastContributor(ctx context.Context, lc contribution.LastContributor) context.Context {
	return context.WithValue(ctx, ctxKeyContributor{}, lc)
}

// GetLastContributor extracts the session's last contributor from context
func GetLastContributor(ctx context.Context) (contribution.LastContributor, bool) {
	lc, ok := ctx.Value(ctxKeyContributor{}).(contribution.LastContributor)
	return lc, ok
}

// SaveLastContributor writes the contributor into the client's session cookie.
func SaveLastContributor(w http.ResponseWriter, r *http.Request, store sessions.Store, lc contribution.LastContributor) error {
	session, _ := store.Get(r, sessionName)
	session.Values[sessionKeyName] = lc.Name
	session.Values[sessionKeyAmount] = lc.AmountCents
	return session.Save(r, w)
}
