package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"productpioneer/internal/app/pioneer/util"
	"productpioneer/pkg/metrics"
)

var (
	// ErrInvalidPrice - отсутствующая или меньше одного цента сумма
	ErrInvalidPrice = errors.New("invalid price")
	// ErrPaymentGateway - отказ на стороне Stripe
	ErrPaymentGateway = errors.New("payment gateway error")
)

// PaymentService создает Stripe payment intent для оплаты membership.
// Состояние платежа локально не хранится
type PaymentService struct {
	gateway util.PaymentGateway
}

// NewPaymentService создает новый платежный сервис
func NewPaymentService(gateway util.PaymentGateway) *PaymentService {
	return &PaymentService{
		gateway: gateway,
	}
}

// CreatePaymentIntent пересчитывает цену в центы и создает intent.
// Сумма меньше одного цента отклоняется до обращения к Stripe
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	amountCents := int64(math.Round(price * 100))
	if amountCents < 1 {
		metrics.PaymentIntents.WithLabelValues("rejected").Inc()
		return "", ErrInvalidPrice
	}

	clientSecret, err := s.gateway.CreateIntent(ctx, amountCents)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	metrics.PaymentIntents.WithLabelValues("created").Inc()
	return clientSecret, nil
}
