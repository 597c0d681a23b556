package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/purescan-ai/purescan-backend/internal/models"
)

// ScanEventPublisher публикует события сканирования в exchange событий.
type ScanEventPublisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewScanEventPublisher создает новый экземпляр ScanEventPublisher.
func NewScanEventPublisher(ch *amqp.Channel, exchange string) *ScanEventPublisher {
	return &ScanEventPublisher{ch: ch, exchange: exchange}
}

// PublishScanCompleted публикует событие завершённого сканирования.
func (p *ScanEventPublisher) PublishScanCompleted(event models.ScanEvent) error {
	return PublishMessage(p.ch, p.exchange, RoutingKeyScanCompleted, event)
}
