package cart

import (
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/locale"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// Notifier shows a transient message to the cart owner.
type Notifier interface {
	Notify(message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

// Cart is the serializable cart state: lines in the order they were first
// added, plus whether the cart panel is shown.
type Cart struct {
	Lines   []domain.CartLine `json:"lines"`
	Visible bool              `json:"visible"`
}

// Receipt describes a completed checkout.
type Receipt struct {
	Message        string            `json:"message"`
	Total          decimal.Decimal   `json:"total"`
	FormattedTotal string            `json:"formatted_total"`
	ItemCount      int               `json:"item_count"`
	Lines          []domain.CartLine `json:"lines"`
	CompletedAt    time.Time         `json:"completed_at"`
}

type Option func(*Manager)

func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

func WithLocale(loc locale.Locale) Option {
	return func(m *Manager) { m.loc = loc }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager applies cart operations to a Cart. It is not safe for concurrent
// use; callers serialize access per cart.
type Manager struct {
	cart     *Cart
	notifier Notifier
	loc      locale.Locale
	now      func() time.Time
}

func NewManager(c *Cart, opts ...Option) *Manager {
	if c == nil {
		c = &Cart{}
	}
	m := &Manager{
		cart:     c,
		notifier: nopNotifier{},
		loc:      locale.English,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) find(productID int64) int {
	for i, l := range m.cart.Lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of product into the cart. The first add stores a copy
// of the product so later catalog changes do not affect the line.
func (m *Manager) Add(product domain.Product) {
	if i := m.find(product.ID); i >= 0 {
		m.cart.Lines[i].Quantity++
	} else {
		m.cart.Lines = append(m.cart.Lines, domain.CartLine{
			Product:  product.Clone(),
			Quantity: 1,
			AddedAt:  m.now(),
		})
	}
	m.notifier.Notify(fmt.Sprintf(m.loc.Messages.AddedToCart, product.Name))
}

func (m *Manager) Remove(productID int64) {
	i := m.find(productID)
	if i < 0 {
		return
	}
	m.cart.Lines = append(m.cart.Lines[:i], m.cart.Lines[i+1:]...)
}

// UpdateQuantity sets the quantity of an existing line. Zero or less
// removes the line; unknown products are ignored.
func (m *Manager) UpdateQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		m.Remove(productID)
		return
	}
	if i := m.find(productID); i >= 0 {
		m.cart.Lines[i].Quantity = quantity
	}
}

func (m *Manager) Increase(productID int64) {
	if i := m.find(productID); i >= 0 {
		m.UpdateQuantity(productID, m.cart.Lines[i].Quantity+1)
	}
}

func (m *Manager) Decrease(productID int64) {
	if i := m.find(productID); i >= 0 {
		m.UpdateQuantity(productID, m.cart.Lines[i].Quantity-1)
	}
}

func (m *Manager) Clear() {
	m.cart.Lines = nil
}

// Lines returns a copy of the cart lines in display order.
func (m *Manager) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(m.cart.Lines))
	copy(out, m.cart.Lines)
	return out
}

func (m *Manager) Quantity(productID int64) int {
	if i := m.find(productID); i >= 0 {
		return m.cart.Lines[i].Quantity
	}
	return 0
}

func (m *Manager) ItemCount() int {
	count := 0
	for _, l := range m.cart.Lines {
		count += l.Quantity
	}
	return count
}

// Total is the exact sum of unit price times quantity.
func (m *Manager) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range m.cart.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// FormattedTotal is Total rounded to two decimals, e.g. "599.98".
func (m *Manager) FormattedTotal() string {
	return locale.FormatAmount(m.Total())
}

func (m *Manager) Visible() bool {
	return m.cart.Visible
}

func (m *Manager) ToggleVisible() bool {
	m.cart.Visible = !m.cart.Visible
	return m.cart.Visible
}

// Checkout completes the purchase: it reports the total, empties the cart
// and hides the cart panel. An empty cart fails with ErrEmptyCart and
// leaves all state untouched.
func (m *Manager) Checkout() (Receipt, error) {
	if len(m.cart.Lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	total := m.Total()
	receipt := Receipt{
		Message:        fmt.Sprintf(m.loc.Messages.CheckoutSuccess, m.loc.FormatMoney(total)),
		Total:          total,
		FormattedTotal: locale.FormatAmount(total),
		ItemCount:      m.ItemCount(),
		Lines:          m.Lines(),
		CompletedAt:    m.now(),
	}

	m.Clear()
	m.cart.Visible = false
	return receipt, nil
}

// EmptyCartMessage is the warning shown when checking out an empty cart.
func (m *Manager) EmptyCartMessage() string {
	return m.loc.Messages.EmptyCart
}
