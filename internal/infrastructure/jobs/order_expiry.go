package jobs

import (
	"context"
	"log"
	"time"
)

// expiryOrderSource is the slice of the order repository the expiry job needs.
type expiryOrderSource interface {
	ListExpiredPending(ctx context.Context, limit int) ([]string, error)
	ExpireOrders(ctx context.Context, orderNos []string) error
}

// OrderExpiryJob flips pending invoices past their expiration date to expired.
type OrderExpiryJob struct {
	repo     expiryOrderSource
	interval time.Duration
	stop     chan struct{}
}

func NewOrderExpiryJob(repo expiryOrderSource) *OrderExpiryJob {
	return &OrderExpiryJob{
		repo:     repo,
		interval: 30 * time.Second,
		stop:     make(chan struct{}),
	}
}

func (j *OrderExpiryJob) Start(ctx context.Context) {
	log.Println("🕐 Starting order expiry job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Order expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Order expiry job stopped")
			return
		case <-ticker.C:
			j.processExpiredOrders(ctx)
		}
	}
}

func (j *OrderExpiryJob) Stop() {
	close(j.stop)
}

func (j *OrderExpiryJob) processExpiredOrders(ctx context.Context) {
	orderNos, err := j.repo.ListExpiredPending(ctx, 100)
	if err != nil {
		log.Printf("❌ Error fetching expired orders: %v", err)
		return
	}

	if len(orderNos) == 0 {
		return
	}

	log.Printf("🔄 Processing %d expired orders...", len(orderNos))

	if err := j.repo.ExpireOrders(ctx, orderNos); err != nil {
		log.Printf("❌ Error expiring orders: %v", err)
		return
	}

	log.Printf("✅ Expired %d orders", len(orderNos))
}
