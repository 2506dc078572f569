package partnerships

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the contract for partnership persistence
type RepositoryInterface interface {
	Create(ctx context.Context, p *Partnership) error
	Get(ctx context.Context, id uuid.UUID) (*Partnership, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Partnership, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Partnership, error)
	UpdateTerms(ctx context.Context, id uuid.UUID, terms Terms) (*Partnership, error)
	RecordTransaction(ctx context.Context, id uuid.UUID, amount float64) (*Partnership, error)
}

// ServiceInterface is the partnership surface the handler depends on
type ServiceInterface interface {
	QuoteDiscount(terms ProposalTerms) *DiscountQuote
	AcceptProposal(ctx context.Context, in AcceptProposalInput) (*Partnership, error)
	Get(ctx context.Context, id uuid.UUID) (*Partnership, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID) ([]*Partnership, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Partnership, error)
	UpdateTerms(ctx context.Context, id uuid.UUID, req UpdateTermsRequest) (*Partnership, error)
	RecordTransaction(ctx context.Context, id uuid.UUID, amount float64) (*Partnership, error)
}

var (
	_ RepositoryInterface = (*Repository)(nil)
	_ ServiceInterface    = (*Service)(nil)
)
