package services

import (
	portsrepo "github.com/SscSPs/fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/fee_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	students portssvc.StudentDirectory,
	notifier portssvc.Notifier,
) *portssvc.ServiceContainer {
	allocator := NewInvoiceNumberAllocator(repos.SequenceRepo)

	return &portssvc.ServiceContainer{
		Invoice: NewInvoiceService(repos.InvoiceRepo, allocator, students,
			WithInvoiceMaxRetries(cfg.AllocatorMaxRetries),
		),
		Payment: NewPaymentService(repos.PaymentRepo, repos.InvoiceRepo, notifier),
		BillingCycle: NewBillingCycleService(repos.InvoiceRepo, allocator, students,
			WithDueDay(cfg.InvoiceDueDay),
			WithCycleConcurrency(cfg.CycleConcurrency),
			WithCycleMaxRetries(cfg.AllocatorMaxRetries),
		),
		Overdue:   NewOverdueSweepService(repos.OverdueRepo, notifier, WithSweepBatchSize(cfg.SweepBatchSize)),
		Reporting: NewReportingService(repos.ReportingRepo),
	}
}
