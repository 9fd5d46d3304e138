package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BarsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backtest_bars_total", Help: "Bars replayed per strategy"},
		[]string{"strategy"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backtest_signals_total", Help: "Entry signals generated"},
		[]string{"type"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backtest_orders_total", Help: "Orders filled per strategy"},
		[]string{"strategy", "side"},
	)
	RejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "backtest_rejections_total", Help: "Broker rejections per strategy"},
		[]string{"strategy"},
	)
)

func init() {
	prometheus.MustRegister(BarsProcessed, SignalsTotal, OrdersTotal, RejectionsTotal)
}

// Serve exposes /metrics on addr in the background.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
