package dto

import (
	"time"

	"github.com/SscSPs/fee_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerateCycleRequest defines the data needed to bill every active student for a period.
type GenerateCycleRequest struct {
	Year        int             `json:"year" binding:"required,min=1,max=9999"`
	Month       int             `json:"month" binding:"required,min=1,max=12"`
	Amount      decimal.Decimal `json:"amount" binding:"dpositive"`
	Description string          `json:"description" binding:"required,max=255"`
}

// Period returns the billing period named by the request.
func (r GenerateCycleRequest) Period() domain.BillingPeriod {
	return domain.BillingPeriod{Year: r.Year, Month: time.Month(r.Month)}
}

// SweepRequest optionally pins the instant the sweep evaluates due dates against.
type SweepRequest struct {
	Now *time.Time `json:"now"`
}

// ItemFailureResponse attributes a batch failure to one entity.
type ItemFailureResponse struct {
	EntityRef string `json:"entityRef"`
	Reason    string `json:"reason"`
}

// CycleResultResponse summarises a billing cycle run.
type CycleResultResponse struct {
	Period       BillingPeriodResponse      `json:"period"`
	Eligible     int                        `json:"eligible"`
	CreatedCount int                        `json:"createdCount"`
	Created      []domain.CreatedInvoiceRef `json:"created"`
	Skipped      []string                   `json:"skipped"`
	Failed       []ItemFailureResponse      `json:"failed"`
	NotAttempted int                        `json:"notAttempted"`
	Cancelled    bool                       `json:"cancelled"`
}

// SweepResultResponse summarises an overdue sweep run.
type SweepResultResponse struct {
	Now               time.Time             `json:"now"`
	Scanned           int                   `json:"scanned"`
	TransitionedCount int                   `json:"transitionedCount"`
	Transitioned      []string              `json:"transitioned"`
	Failed            []ItemFailureResponse `json:"failed"`
	RemindersSent     int                   `json:"remindersSent"`
	ReminderFailures  int                   `json:"reminderFailures"`
	Cancelled         bool                  `json:"cancelled"`
}

func toItemFailureResponses(failures []domain.ItemFailure) []ItemFailureResponse {
	out := make([]ItemFailureResponse, len(failures))
	for i, f := range failures {
		out[i] = ItemFailureResponse{EntityRef: f.EntityRef, Reason: f.Reason}
	}
	return out
}

// ToCycleResultResponse converts a domain.CycleResult to its DTO.
func ToCycleResultResponse(r *domain.CycleResult) CycleResultResponse {
	return CycleResultResponse{
		Period:       BillingPeriodResponse{Year: r.Period.Year, Month: int(r.Period.Month)},
		Eligible:     r.Eligible,
		CreatedCount: len(r.Created),
		Created:      r.Created,
		Skipped:      r.Skipped,
		Failed:       toItemFailureResponses(r.Failed),
		NotAttempted: r.NotAttempted,
		Cancelled:    r.Cancelled,
	}
}

// ToSweepResultResponse converts a domain.SweepResult to its DTO.
func ToSweepResultResponse(r *domain.SweepResult) SweepResultResponse {
	return SweepResultResponse{
		Now:               r.Now,
		Scanned:           r.Scanned,
		TransitionedCount: len(r.Transitioned),
		Transitioned:      r.Transitioned,
		Failed:            toItemFailureResponses(r.Failed),
		RemindersSent:     r.RemindersSent,
		ReminderFailures:  r.ReminderFailures,
		Cancelled:         r.Cancelled,
	}
}
