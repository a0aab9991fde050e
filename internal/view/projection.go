package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/alebati123/abshine-storefront/internal/shop"
)

// LineView is one cart row, render-ready.
type LineView struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Details   string `json:"details"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// AuthView is the auth panel state.
type AuthView struct {
	SignedIn bool   `json:"signed_in"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ViewModel is everything the UI needs to render the cart and auth panels.
// Derivable at any time from current state alone.
type ViewModel struct {
	Lines     []LineView `json:"lines"`
	Empty     bool       `json:"empty"`
	ItemCount int        `json:"item_count"`
	Total     string     `json:"total"`
	Auth      AuthView   `json:"auth"`
}

// Project derives the ViewModel from the cart and session. Pure: no hidden
// accumulator, no side effects.
func Project(cart []shop.CartLine, session *shop.Session) ViewModel {
	lines := make([]LineView, 0, len(cart))
	var total float64
	var count int

	for _, l := range cart {
		lines = append(lines, LineView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Details:   l.Details,
			Image:     l.Image,
			Quantity:  l.Quantity,
			UnitPrice: FormatPrice(l.Price),
			LineTotal: FormatPrice(l.Total()),
		})
		total += l.Total()
		count += l.Quantity
	}

	vm := ViewModel{
		Lines:     lines,
		Empty:     len(lines) == 0,
		ItemCount: count,
		Total:     FormatPrice(total),
	}

	if session != nil {
		vm.Auth = AuthView{
			SignedIn: true,
			Name:     session.Name,
			Email:    session.Email,
			Role:     session.Role,
		}
	}
	return vm
}

// FormatPrice renders a price the way the storefront displays it: dot as
// thousands separator, comma decimals, no decimals for whole amounts.
func FormatPrice(price float64) string {
	negative := price < 0
	price = math.Abs(price)

	cents := int64(math.Round(price * 100))
	whole := cents / 100
	frac := cents % 100

	grouped := groupThousands(whole)
	var out string
	if frac == 0 {
		out = fmt.Sprintf("$%s", grouped)
	} else {
		out = fmt.Sprintf("$%s,%02d", grouped, frac)
	}
	if negative {
		out = "-" + out
	}
	return out
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return digits
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return strings.Join(groups, ".")
}
