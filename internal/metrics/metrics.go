// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts orders successfully checked out, by payment method.
	OrdersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurant_orders_created_total",
		Help: "Orders created at checkout.",
	}, []string{"payment_method"})

	// PaymentFailures counts rejected or failed payment attempts.
	PaymentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restaurant_payment_failures_total",
		Help: "Payment attempts that were rejected or failed.",
	})

	// DiscountSweeps counts background sweep runs by outcome.
	DiscountSweeps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "restaurant_discount_sweeps_total",
		Help: "Expired-discount sweep runs.",
	}, []string{"outcome"})

	// DiscountSweepReverted counts menu items reverted by sweeps.
	DiscountSweepReverted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restaurant_discount_sweep_reverted_total",
		Help: "Menu items whose expired discounts were reverted.",
	})

	// MenuCacheHits and MenuCacheMisses track the Redis menu cache.
	MenuCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restaurant_menu_cache_hits_total",
		Help: "Menu listings served from cache.",
	})
	MenuCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restaurant_menu_cache_misses_total",
		Help: "Menu listings that fell through to the database.",
	})
)
