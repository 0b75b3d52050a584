package domain

import "context"

type CardBrand string

const CardBrandVisa CardBrand = "VISA"

type CardKind string

const CardKindCredit CardKind = "CREDIT"

type CreateCardRequest struct {
	AccountID int64
	Brand     CardBrand
	Kind      CardKind
}

// CardIssuer is the card-service port. Issuance during account creation is
// best effort; a failure does not undo the account.
type CardIssuer interface {
	IssueCard(ctx context.Context, req CreateCardRequest) error
}
