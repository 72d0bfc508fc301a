package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_shop/internal/cart"
	"github.com/fjod/go_shop/internal/catalog"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/events"
	"github.com/fjod/go_shop/internal/filter"
	"github.com/fjod/go_shop/internal/locale"
	"github.com/fjod/go_shop/internal/notify"
	"github.com/fjod/go_shop/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Info describes the shop in the page header.
type Info struct {
	Name          string
	Tagline       string
	Status        domain.ShopStatus
	EngineVersion string
	PluginVersion string
}

// Visitor identifies who is acting. Locale is used when the session is
// created; Explicit asks an existing session to switch to it.
type Visitor struct {
	SessionID string
	Locale    locale.Locale
	Explicit  bool
}

type Service struct {
	catalog   *catalog.Service
	store     Store
	notices   *notify.Center
	publisher events.Publisher
	info      Info
	log       *zap.Logger
	now       func() time.Time
}

func NewService(
	products *catalog.Service,
	store Store,
	notices *notify.Center,
	publisher events.Publisher,
	info Info,
	log *zap.Logger,
) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		catalog:   products,
		store:     store,
		notices:   notices,
		publisher: publisher,
		info:      info,
		log:       log,
		now:       time.Now,
	}
}

// prepare returns the session to act on: a new one for an unknown
// visitor, otherwise the stored one moved to an explicitly chosen locale.
func (s *Service) prepare(current *Session, v Visitor) *Session {
	if current == nil {
		return NewSession(v.SessionID, v.Locale, s.now())
	}
	if v.Explicit && current.Locale != v.Locale.Code {
		current.switchLocale(v.Locale)
	}
	return current
}

// pendingNotices collects the messages raised while a session is changed.
// They are shown only once the change is stored.
type pendingNotices struct {
	messages []string
}

func (p *pendingNotices) Notify(message string) {
	p.messages = append(p.messages, message)
}

func (s *Service) manager(session *Session, notifier cart.Notifier) *cart.Manager {
	return cart.NewManager(&session.Cart,
		cart.WithNotifier(notifier),
		cart.WithLocale(session.locale()),
		cart.WithClock(s.now),
	)
}

// update runs fn on the visitor's session as one store update. A failing
// fn or store leaves the stored session untouched and shows no
// notifications.
func (s *Service) update(ctx context.Context, v Visitor, fn func(*Session, *cart.Manager) error) (*Session, error) {
	var pending *pendingNotices
	session, err := s.store.Update(ctx, v.SessionID, func(current *Session) (*Session, error) {
		session := s.prepare(current, v)
		pending = &pendingNotices{}
		if err := fn(session, s.manager(session, pending)); err != nil {
			return nil, err
		}
		session.UpdatedAt = s.now()
		return session, nil
	})
	if err != nil {
		return nil, err
	}

	if pending != nil {
		notices := s.notices.For(v.SessionID)
		for _, msg := range pending.messages {
			notices.Notify(msg)
		}
	}
	return session, nil
}

// Page assembles the data for the first render of the shop page.
func (s *Service) Page(ctx context.Context, v Visitor) (domain.PageData, error) {
	session, err := s.update(ctx, v, func(*Session, *cart.Manager) error { return nil })
	if err != nil {
		return domain.PageData{}, err
	}
	loc := session.locale()

	products, err := s.catalog.Products(ctx, loc)
	if err != nil {
		return domain.PageData{}, err
	}

	return domain.PageData{
		ShopInfo: domain.ShopInfo{
			Name:          s.info.Name,
			Tagline:       s.info.Tagline,
			Status:        s.info.Status,
			Time:          s.now().Format(loc.DateLayout),
			EngineVersion: s.info.EngineVersion,
			PluginVersion: s.info.PluginVersion,
		},
		Locale:     loc.Code,
		Products:   products,
		Categories: filter.Categories(products, loc.AllCategory),
	}, nil
}

// SelectionUpdate names the parts of a selection to replace; nil fields
// keep the session's current value.
type SelectionUpdate struct {
	Category *string
	Search   *string
	Sort     *string
}

// Refine applies a partial selection change and lists the result.
func (s *Service) Refine(ctx context.Context, v Visitor, upd SelectionUpdate) (ProductsView, error) {
	return s.selectAndList(ctx, v, func(session *Session) {
		if upd.Category != nil {
			session.Selection.Category = *upd.Category
			if *upd.Category == "" {
				session.Selection.Category = session.locale().AllCategory
			}
		}
		if upd.Search != nil {
			session.Selection.Search = *upd.Search
		}
		if upd.Sort != nil {
			session.Selection.Sort = filter.ParseSortKey(*upd.Sort)
		}
	})
}

func (s *Service) ToggleViewMode(ctx context.Context, v Visitor) (ViewMode, error) {
	session, err := s.update(ctx, v, func(session *Session, _ *cart.Manager) error {
		session.toggleViewMode()
		return nil
	})
	if err != nil {
		return "", err
	}
	return session.ViewMode, nil
}

func (s *Service) selectAndList(ctx context.Context, v Visitor, apply func(*Session)) (ProductsView, error) {
	session, err := s.update(ctx, v, func(session *Session, _ *cart.Manager) error {
		apply(session)
		return nil
	})
	if err != nil {
		return ProductsView{}, err
	}
	loc := session.locale()

	products, err := s.catalog.Products(ctx, loc)
	if err != nil {
		return ProductsView{}, err
	}
	filtered := filter.Products(products, session.Selection, loc.AllCategory)
	return ProductsView{
		Products:   filtered,
		Selection:  session.Selection,
		ViewMode:   session.ViewMode,
		Categories: filter.Categories(products, loc.AllCategory),
		Count:      len(filtered),
	}, nil
}

// ShowProduct opens the detail modal for one product.
func (s *Service) ShowProduct(ctx context.Context, v Visitor, productID int64) (ProductDetail, error) {
	var detail ProductDetail
	_, err := s.update(ctx, v, func(session *Session, m *cart.Manager) error {
		loc := session.locale()
		p, err := s.catalog.Product(ctx, loc, productID)
		if err != nil {
			return err
		}
		session.showProduct(p)
		detail = newProductDetail(p, loc, m.Quantity(p.ID), true)
		return nil
	})
	if err != nil {
		return ProductDetail{}, err
	}
	return detail, nil
}

func (s *Service) CloseProduct(ctx context.Context, v Visitor) error {
	_, err := s.update(ctx, v, func(session *Session, _ *cart.Manager) error {
		session.closeProduct()
		return nil
	})
	return err
}

func (s *Service) Cart(ctx context.Context, v Visitor) (CartView, error) {
	return s.updateCart(ctx, v, func(*Session, *cart.Manager) error { return nil })
}

func (s *Service) AddToCart(ctx context.Context, v Visitor, productID int64) (CartView, error) {
	return s.updateCart(ctx, v, func(session *Session, m *cart.Manager) error {
		p, err := s.catalog.Product(ctx, session.locale(), productID)
		if err != nil {
			return err
		}
		if !p.InStock {
			return fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
		m.Add(p)
		return nil
	})
}

func (s *Service) RemoveFromCart(ctx context.Context, v Visitor, productID int64) (CartView, error) {
	return s.updateCart(ctx, v, func(_ *Session, m *cart.Manager) error {
		m.Remove(productID)
		return nil
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, v Visitor, productID int64, quantity int) (CartView, error) {
	return s.updateCart(ctx, v, func(_ *Session, m *cart.Manager) error {
		m.UpdateQuantity(productID, quantity)
		return nil
	})
}

func (s *Service) IncreaseQuantity(ctx context.Context, v Visitor, productID int64) (CartView, error) {
	return s.updateCart(ctx, v, func(_ *Session, m *cart.Manager) error {
		m.Increase(productID)
		return nil
	})
}

func (s *Service) DecreaseQuantity(ctx context.Context, v Visitor, productID int64) (CartView, error) {
	return s.updateCart(ctx, v, func(_ *Session, m *cart.Manager) error {
		m.Decrease(productID)
		return nil
	})
}

func (s *Service) ClearCart(ctx context.Context, v Visitor) (CartView, error) {
	return s.updateCart(ctx, v, func(_ *Session, m *cart.Manager) error {
		m.Clear()
		return nil
	})
}

func (s *Service) ToggleCart(ctx context.Context, v Visitor) (CartView, error) {
	return s.updateCart(ctx, v, func(_ *Session, m *cart.Manager) error {
		m.ToggleVisible()
		return nil
	})
}

func (s *Service) updateCart(ctx context.Context, v Visitor, fn func(*Session, *cart.Manager) error) (CartView, error) {
	var view CartView
	_, err := s.update(ctx, v, func(session *Session, m *cart.Manager) error {
		if err := fn(session, m); err != nil {
			return err
		}
		view = newCartView(m, session.locale())
		return nil
	})
	if err != nil {
		return CartView{}, err
	}
	return view, nil
}

// EmptyCartError carries the localized warning for an empty checkout.
type EmptyCartError struct {
	Message string
}

func (e *EmptyCartError) Error() string { return e.Message }

func (e *EmptyCartError) Unwrap() error { return cart.ErrEmptyCart }

// Checkout completes the purchase and announces it. The returned error
// wraps cart.ErrEmptyCart when there was nothing to buy.
func (s *Service) Checkout(ctx context.Context, v Visitor) (cart.Receipt, error) {
	var (
		receipt cart.Receipt
		loc     locale.Locale
	)
	session, err := s.update(ctx, v, func(session *Session, m *cart.Manager) error {
		loc = session.locale()
		r, err := m.Checkout()
		if errors.Is(err, cart.ErrEmptyCart) {
			return &EmptyCartError{Message: m.EmptyCartMessage()}
		}
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		return cart.Receipt{}, err
	}

	event := checkoutEvent(session.ID, loc, receipt)
	if errPub := s.publisher.PublishCheckout(ctx, event); errPub != nil {
		logger.FromContext(ctx, s.log).Warn("publish checkout event failed",
			zap.String("checkout_id", event.CheckoutID),
			zap.Error(errPub),
		)
	}
	return receipt, nil
}

func checkoutEvent(sessionID string, loc locale.Locale, r cart.Receipt) events.CheckoutCompleted {
	items := make([]events.CheckoutItem, 0, len(r.Lines))
	for _, l := range r.Lines {
		items = append(items, events.CheckoutItem{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Quantity:    l.Quantity,
			UnitPrice:   locale.FormatAmount(l.Product.Price),
			Subtotal:    locale.FormatAmount(l.Subtotal()),
		})
	}
	return events.CheckoutCompleted{
		CheckoutID:  uuid.NewString(),
		SessionID:   sessionID,
		Locale:      loc.Code,
		Currency:    loc.Currency,
		Items:       items,
		ItemCount:   r.ItemCount,
		TotalAmount: r.FormattedTotal,
		CompletedAt: r.CompletedAt,
	}
}

func (s *Service) Notifications(_ context.Context, v Visitor) []notify.Notification {
	return s.notices.Active(v.SessionID)
}

func (s *Service) DismissNotification(_ context.Context, v Visitor, id string) {
	s.notices.Dismiss(v.SessionID, id)
}

// EndSession forgets the session and its notifications.
func (s *Service) EndSession(ctx context.Context, v Visitor) error {
	s.notices.DismissAll(v.SessionID)
	if err := s.store.Delete(ctx, v.SessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
