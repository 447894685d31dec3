package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storefront_orders_placed_total",
	Help: "Orders created through checkout",
})
