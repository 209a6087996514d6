package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CreditCard PaymentMethod = "CC"
	Debit      PaymentMethod = "Debit"
	Cash       PaymentMethod = "Cash"
)

type (
	PaymentMethod string

	// Date is a timezone-naive calendar date.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is one expense row as recorded in the store.
	Transaction struct {
		Timestamp     time.Time // when the row was recorded; zero if unknown
		User          string
		PurchaseDate  Date
		Item          string
		Amount        Money
		Category      string
		PaymentMethod PaymentMethod
	}

	// IncomeRecord mirrors Transaction for the income table.
	IncomeRecord struct {
		Timestamp   time.Time
		User        string
		Date        Date
		Source      string
		Description string
		Amount      Money
	}

	// UserAllocation is one user's share of a budget row.
	UserAllocation struct {
		User   string
		Amount Money
	}

	// BudgetRow is a static reference row joined against actual spend.
	BudgetRow struct {
		Category    string
		Allocations []UserAllocation
		Total       Money
	}
)

// Default label sets; overridable via configuration.
var (
	DefaultUsers = []string{"Mikael", "Josephine"}

	DefaultCategories = []string{
		"Bills", "Subscriptions", "Entertainment", "Food & Drink", "Groceries",
		"Health & Wellbeing", "Shopping", "Transport", "Travel", "Business",
		"Gifts", "Other",
	}

	IncomeSources = []string{"Salary", "Freelance", "Other"}

	PaymentMethods = []PaymentMethod{CreditCard, Debit, Cash}
)

var (
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyItem            = errors.New("empty item description")
	ErrItemTooLong          = errors.New("item description too long (max 200 characters)")
	ErrEmptyUser            = errors.New("empty user")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrUnknownSource        = errors.New("unknown income source")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a point in time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// AddMonths shifts the date by whole calendar months.
func (d Date) AddMonths(n int) Date {
	return Date{Time: d.AddDate(0, n, 0)}
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (pm PaymentMethod) Validate() error {
	switch pm {
	case CreditCard, Debit, Cash:
		return nil
	}
	return ErrUnknownPaymentMethod
}

func (t Transaction) Validate() error {
	if err := t.PurchaseDate.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.User) == "" {
		return ErrEmptyUser
	}
	if len(strings.TrimSpace(t.Item)) == 0 {
		return ErrEmptyItem
	}
	if len(t.Item) > 200 {
		return ErrItemTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	return t.PaymentMethod.Validate()
}

// RecencyKey is the sort key for the recent-transactions view: the
// recording timestamp when known, otherwise the purchase date.
func (t Transaction) RecencyKey() time.Time {
	if !t.Timestamp.IsZero() {
		return t.Timestamp
	}
	return t.PurchaseDate.Time
}

func (ir IncomeRecord) Validate() error {
	if err := ir.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(ir.User) == "" {
		return ErrEmptyUser
	}
	if len(strings.TrimSpace(ir.Description)) == 0 {
		return ErrEmptyItem
	}
	if err := ir.Amount.Validate(); err != nil {
		return err
	}
	for _, s := range IncomeSources {
		if ir.Source == s {
			return nil
		}
	}
	return ErrUnknownSource
}
