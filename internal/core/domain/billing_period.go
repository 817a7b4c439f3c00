package domain

import (
	"fmt"
	"time"
)

// BillingPeriod identifies a monthly billing cycle.
type BillingPeriod struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// PeriodOf returns the UTC billing period containing t.
func PeriodOf(t time.Time) BillingPeriod {
	u := t.UTC()
	return BillingPeriod{Year: u.Year(), Month: u.Month()}
}

// Validate checks the period is a real calendar month that fits the invoice number format.
func (p BillingPeriod) Validate() error {
	if p.Year < 1 || p.Year > 9999 {
		return fmt.Errorf("billing period year %d out of range", p.Year)
	}
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("billing period month %d out of range", int(p.Month))
	}
	return nil
}

func (p BillingPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Start is the first day of the period.
func (p BillingPeriod) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// DueDate is the given day of the period, clamped to the last day of the month.
func (p BillingPeriod) DueDate(day int) time.Time {
	if day < 1 {
		day = 1
	}
	last := p.Start().AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC)
}
