package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	EntryExpense EntryType = "expense"
	EntryIncome  EntryType = "income"

	PaymentRegular PaymentType = "payment"
	PaymentAdvance PaymentType = "advance"
)

// DateLayout is the on-disk format of every date column.
const DateLayout = "2006-01-02"

type (
	// EntryType tells ledger rows apart.
	EntryType string

	// PaymentType tells a regular payment from an advance.
	PaymentType string

	Date struct {
		time.Time
	}

	Client struct {
		ID         int64
		Name       string
		Phone      string
		DailyRate  decimal.Decimal
		DaysWorked int64
	}

	Attendance struct {
		ID       int64
		ClientID int64
		Date     Date
	}

	Payment struct {
		ID       int64
		ClientID int64
		Amount   decimal.Decimal
		Type     PaymentType
		Date     Date
	}

	// Entry is a general ledger row, not tied to any client.
	Entry struct {
		ID          int64
		Type        EntryType
		Amount      decimal.Decimal
		Description string
		Date        Date
	}
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmptyName          = errors.New("empty name")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNegativeAmount     = errors.New("negative amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidEntryType   = errors.New("invalid entry type")
	ErrInvalidPaymentType = errors.New("invalid payment type")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar day.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD day.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String formats the day the way it is stored.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t EntryType) Valid() bool {
	return t == EntryExpense || t == EntryIncome
}

func (t PaymentType) Valid() bool {
	return t == PaymentRegular || t == PaymentAdvance
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Kind: KindMissingField, Field: "name", Err: ErrEmptyName}
	}
	if c.DailyRate.IsNegative() {
		return &ValidationError{Kind: KindNegativeAmount, Field: "daily_rate", Err: ErrNegativeAmount}
	}
	if c.DaysWorked < 0 {
		return &ValidationError{Kind: KindNegativeAmount, Field: "days_worked", Err: ErrNegativeAmount}
	}
	return nil
}

// Wages is what the client has earned from the counter so far.
func (c Client) Wages() decimal.Decimal {
	return c.DailyRate.Mul(decimal.NewFromInt(c.DaysWorked))
}

func (p Payment) Validate() error {
	if !p.Amount.IsPositive() {
		return &ValidationError{Kind: KindInvalidNumber, Field: "amount", Err: ErrInvalidAmount}
	}
	if !p.Type.Valid() {
		return &ValidationError{Kind: KindInvalidType, Field: "type", Value: string(p.Type), Err: ErrInvalidPaymentType}
	}
	if err := p.Date.Validate(); err != nil {
		return &ValidationError{Kind: KindInvalidDate, Field: "date", Err: err}
	}
	return nil
}

// MaxDescriptionLen is the longest ledger description accepted, in characters.
const MaxDescriptionLen = 200

func (e Entry) Validate() error {
	if !e.Type.Valid() {
		return &ValidationError{Kind: KindInvalidType, Field: "type", Value: string(e.Type), Err: ErrInvalidEntryType}
	}
	if !e.Amount.IsPositive() {
		return &ValidationError{Kind: KindInvalidNumber, Field: "amount", Err: ErrInvalidAmount}
	}
	if utf8.RuneCountInString(e.Description) > MaxDescriptionLen {
		return &ValidationError{Kind: KindTooLong, Field: "description"}
	}
	if err := e.Date.Validate(); err != nil {
		return &ValidationError{Kind: KindInvalidDate, Field: "date", Err: err}
	}
	return nil
}
