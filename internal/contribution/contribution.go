package contribution

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const TimestampLayout = "2006-01-02 15:04:05"

const AnonymousName = "Anonymous"

// MaxAmountUnits caps a single contribution in whole currency units.
const (
	MaxAmountUnits int64 = 1_000_000
	MaxAmountCents       = MaxAmountUnits * 100
)

var ErrTotalOverflow = errors.New("contribution total exceeds the supported range")

const (
	MethodCard = "card"
	MethodCash = "cash"
)

// Contribution is one confirmed payment toward the gift fund.
// Amounts are held in cents; whole currency units only appear at the HTTP boundary.
type Contribution struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	AmountCents   int64     `json:"amount_cents" db:"amount_cents"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	PaymentRef    string    `json:"payment_ref,omitempty" db:"payment_ref"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

func (c Contribution) Timestamp() string {
	return c.CreatedAt.Format(TimestampLayout)
}

func (c Contribution) Amount() string {
	return FormatCents(c.AmountCents)
}

type Summary struct {
	Contributions []Contribution `json:"contributions"`
	Count         int            `json:"count"`
	TotalCents    int64          `json:"total_cents"`
	Total         string         `json:"total"`
}

// LastContributor is the per-session record of the most recent contribution.
type LastContributor struct {
	Name        string `json:"name"`
	AmountCents int64  `json:"amount_cents"`
}

func (l LastContributor) Amount() string {
	return FormatCents(l.AmountCents)
}

type RecordRequest struct {
	Name          string
	AmountCents   int64
	PaymentMethod string
	PaymentRef    string
}

func CentsFromUnits(units int64) int64 {
	return units * 100
}

// SumCents adds the amounts in order and fails instead of wrapping past math.MaxInt64.
func SumCents(list []Contribution) (int64, error) {
	var total int64
	for _, c := range list {
		if c.AmountCents > 0 && total > math.MaxInt64-c.AmountCents {
			return 0, ErrTotalOverflow
		}
		total += c.AmountCents
	}
	return total, nil
}

func UnitsFromCents(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

// FormatUnits renders whole currency units, dropping any cents.
func FormatUnits(cents int64) string {
	return strconv.FormatInt(cents/100, 10)
}

func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
