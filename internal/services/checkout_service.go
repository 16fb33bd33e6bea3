package services

import "motortrade/internal/repos"

type CheckoutService struct {
	Carts   *repos.CartRepo
	TaxRate float64
}

func NewCheckoutService(carts *repos.CartRepo, taxRate float64) *CheckoutService {
	return &CheckoutService{Carts: carts, TaxRate: taxRate}
}

// Confirmation is the checkout payload. No durable order record is
// created; checkout computes the total and clears the cart.
type Confirmation struct {
	OrderTotal float64
	ItemCount  int // distinct lines, not summed quantities
}

// Process checks out the account's persisted cart. The read and the
// clear happen inside one transaction so nothing is lost or
// double-charged around a concurrent add. An empty cart fails before
// anything is touched.
func (s *CheckoutService) Process(accountID string) (Confirmation, error) {
	lines, err := s.Carts.CheckoutClear(accountID)
	if err != nil {
		return Confirmation{}, err
	}
	if len(lines) == 0 {
		return Confirmation{}, ErrEmptyCart
	}

	sub := 0.0
	for _, l := range lines {
		sub += l.UnitPrice * float64(l.Quantity)
	}
	t := CalcTotals(sub, s.TaxRate)

	return Confirmation{OrderTotal: t.Total, ItemCount: len(lines)}, nil
}
