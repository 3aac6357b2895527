package util

import "context"

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// PaymentGateway интерфейс платежного провайдера (Stripe)
// Возвращает client secret для подтверждения платежа на клиенте
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
}
