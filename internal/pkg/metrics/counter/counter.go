package counter

import (
	"context"

	"github.com/alloservices/alloci/internal/pkg/cache"
)

const paymentCountersKey = "payments:counters"

// Hash fields tracked under the payment counters key.
const (
	FieldInitiated         = "initiated"
	FieldInitiateFallback  = "initiate_fallback"
	FieldWebhooksReceived  = "webhooks_received"
	FieldSignatureValid    = "signature_valid"
	FieldSignatureFallback = "signature_fallback"
	FieldAccepted          = "accepted"
	FieldRefused           = "refused"
)

// Add increments an operational payment counter in Redis. Best effort: the
// caller ignores the error, a dead cache must never affect payment handling.
func Add(field string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, paymentCountersKey, field, 1).Err()
}

// Snapshot returns all payment counters for operational visibility.
func Snapshot() (map[string]string, error) {
	ctx := context.Background()
	return cache.GetClient().HGetAll(ctx, paymentCountersKey).Result()
}
