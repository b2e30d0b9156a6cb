package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/cart"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/formrelay"
	"github.com/SvAkshayKumar/SmartCart-GenAI/pkg/logger"
)

// Subjects the relay endpoint routes on. These match the live form
// configuration and must not drift.
const (
	subjectOrder      = "New SmartCart Order"
	subjectNewsletter = "SmartCart Newsletter Signup"
	subjectContact    = "SmartCart Contact Message"
)

type relay interface {
	Submit(ctx context.Context, sub formrelay.Submission) error
}

// Service relays storefront forms to the configured form endpoint.
type Service struct {
	relay      relay
	carts      *cart.Manager
	clearDelay time.Duration
	logg       *logger.Logger
}

// NewService builds the checkout service.
func NewService(relay relay, carts *cart.Manager, clearDelay time.Duration, logg *logger.Logger) (*Service, error) {
	if relay == nil {
		return nil, fmt.Errorf("form relay required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart manager required")
	}
	if clearDelay < 0 {
		clearDelay = 0
	}
	return &Service{
		relay:      relay,
		carts:      carts,
		clearDelay: clearDelay,
		logg:       logg,
	}, nil
}

// OrderForm is the buyer-supplied part of a checkout submission.
type OrderForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// ContactForm is a storefront contact message.
type ContactForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// PlaceOrder posts the order to the relay with the serialized cart attached.
// The cart is cleared after a fixed delay whether or not the relay accepted
// the submission; the delay mirrors the storefront's historical behavior and
// is a documented weakness.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, form OrderForm) error {
	engine := s.carts.Engine(ctx, sessionID)
	items := engine.Items()
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	cartData, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serialize cart")
	}
	total := engine.Totals().Total

	submitErr := s.relay.Submit(ctx, formrelay.Submission{
		Subject: subjectOrder,
		Fields: map[string]string{
			"name":         form.Name,
			"email":        form.Email,
			"phone":        form.Phone,
			"zip":          form.Zip,
			"address":      form.Address,
			"cart_data":    string(cartData),
			"total_amount": "$" + total.StringFixed(2),
		},
	})

	s.scheduleClear(sessionID)

	if submitErr != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "relaying order submission", submitErr)
		}
		return submitErr
	}
	return nil
}

// Contact relays a contact-form message.
func (s *Service) Contact(ctx context.Context, form ContactForm) error {
	return s.relay.Submit(ctx, formrelay.Submission{
		Subject: subjectContact,
		Fields: map[string]string{
			"name":    form.Name,
			"email":   form.Email,
			"message": form.Message,
		},
	})
}

// Subscribe relays a newsletter signup.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	return s.relay.Submit(ctx, formrelay.Submission{
		Subject: subjectNewsletter,
		Fields:  map[string]string{"email": email},
	})
}

func (s *Service) scheduleClear(sessionID string) {
	clearCart := func() {
		ctx := context.Background()
		s.carts.Engine(ctx, sessionID).Clear(ctx)
	}
	if s.clearDelay == 0 {
		clearCart()
		return
	}
	time.AfterFunc(s.clearDelay, clearCart)
}
