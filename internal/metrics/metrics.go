// Package metrics Prometheus のメトリクス定義
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ViewIncrements 重複を除いて加算された閲覧数
	ViewIncrements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_view_increments_total",
		Help: "Total number of deduplicated portfolio view increments",
	})

	// LikeToggles いいねの切り替え回数 (result: liked/unliked/conflict/error)
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_like_toggles_total",
		Help: "Total number of like toggles by result",
	}, []string{"result"})

	// SearchDuration 検索パイプラインの実行時間
	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_search_duration_seconds",
		Help:    "Portfolio search pipeline latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"sort"})
)

// ObserveSearch 検索時間を記録
func ObserveSearch(sort string, started time.Time) {
	SearchDuration.WithLabelValues(sort).Observe(time.Since(started).Seconds())
}

// Handler /metrics のハンドラー
func Handler() http.Handler {
	return promhttp.Handler()
}
