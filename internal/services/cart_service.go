package services

import (
	"database/sql"
	"errors"
	"math"

	"motortrade/internal/repos"
	"motortrade/internal/sessioncart"
)

const noImage = "/images/vehicles/no-image.png"

type CartService struct {
	Carts   *repos.CartRepo
	Inv     *repos.InventoryRepo
	TaxRate float64
}

func NewCartService(carts *repos.CartRepo, inv *repos.InventoryRepo, taxRate float64) *CartService {
	return &CartService{Carts: carts, Inv: inv, TaxRate: taxRate}
}

// Totals are each rounded to two decimals independently,
// half-away-from-zero.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func CalcTotals(subtotal, rate float64) Totals {
	sub := round2(subtotal)
	tax := round2(sub * rate)
	return Totals{Subtotal: sub, Tax: tax, Total: round2(sub + tax)}
}

// FallbackInfo is the client-supplied item data that lets an add
// degrade to the session cart when the store cannot be read.
type FallbackInfo struct {
	Name  string
	Price *float64
	Image string
}

// AddOutcome reports where the line ended up. Exactly one of Line
// (persisted) or Fallback (session) is meaningful.
type AddOutcome struct {
	Line     *repos.CartLine
	Fallback bool
	Message  string
}

// Add puts qty units of a vehicle into the authenticated account's
// persisted cart, degrading to the caller's session cart when the
// store is unreachable. The availability-over-consistency tradeoff is
// deliberate: a shopper keeps a working cart during an outage, at the
// cost of that line diverging from persisted truth for the session's
// lifetime.
func (s *CartService) Add(accountID, invID string, qty int, fb FallbackInfo, sess *sessioncart.Cart) (AddOutcome, error) {
	if qty < 1 {
		return AddOutcome{}, ErrInvalidQuantity
	}

	v, err := s.Inv.Get(invID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AddOutcome{}, ErrNotFound
		}
		// Store unreachable. Degrade to the session cart when the
		// client supplied enough to build a line; otherwise there is
		// nothing useful to save.
		if fb.Name != "" && fb.Price != nil {
			img := fb.Image
			if img == "" {
				img = noImage
			}
			sess.Add(sessioncart.Line{InvID: invID, Name: fb.Name, Price: *fb.Price, Image: img, Quantity: qty})
			return AddOutcome{Fallback: true, Message: "Database temporarily unavailable. Item saved to your session cart."}, nil
		}
		return AddOutcome{}, ErrStoreUnavailable
	}

	line, err := s.Carts.UpsertLine(accountID, invID, qty, v.Price)
	if err != nil {
		// Write failed after a successful lookup; the vehicle data we
		// already have populates the session line.
		img := v.Thumbnail
		if img == "" {
			img = v.Image
		}
		if img == "" {
			img = noImage
		}
		sess.Add(sessioncart.Line{InvID: invID, Name: v.Make + " " + v.Model, Price: v.Price, Image: img, Quantity: qty})
		return AddOutcome{Fallback: true, Message: "Database error. Item saved to your session cart."}, nil
	}

	return AddOutcome{Line: line}, nil
}

func (s *CartService) List(accountID string) ([]repos.CartLine, Totals, error) {
	lines, err := s.Carts.ListByAccount(accountID)
	if err != nil {
		return nil, Totals{}, err
	}
	sub := 0.0
	for _, l := range lines {
		sub += l.UnitPrice * float64(l.Quantity)
	}
	return lines, CalcTotals(sub, s.TaxRate), nil
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *CartService) UpdateQuantity(accountID, invID string, qty int) (*repos.CartLine, bool, error) {
	if qty < 0 {
		return nil, false, ErrInvalidQuantity
	}
	if qty == 0 {
		if err := s.Carts.Remove(accountID, invID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	line, err := s.Carts.SetQuantity(accountID, invID, qty)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	return line, false, nil
}

func (s *CartService) Remove(accountID, invID string) error {
	return s.Carts.Remove(accountID, invID)
}

func (s *CartService) Count(accountID string) (int, error) {
	return s.Carts.Count(accountID)
}
