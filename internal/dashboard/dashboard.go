// Package dashboard renders stored trends as charts for a quick overview.
package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"TrendPoster/internal/ports"
)

const topTrendBars = 10

// Server renders the trends dashboard on its own listener.
type Server struct {
	trends ports.TrendRepository
	logger *slog.Logger
}

// New wires the trend repository into the dashboard.
func New(trends ports.TrendRepository, logger *slog.Logger) *Server {
	return &Server{trends: trends, logger: logger}
}

// Handler serves the charts page.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.render)
	return mux
}

// Run serves the dashboard on the given port until the listener fails.
func (s *Server) Run(port string) error {
	return http.ListenAndServe(":"+port, s.Handler())
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	trends, err := s.trends.List(r.Context(), "", "", 0)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("load trends for dashboard", "error", err)
		}
		http.Error(w, "failed to load trends", http.StatusInternalServerError)
		return
	}

	// 1. Source dominance
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Trends by Source"}))

	sourceCounts := make(map[string]int)
	for _, trend := range trends {
		sourceCounts[string(trend.Topic.Source)]++
	}

	var pieItems []opts.PieData
	for source, count := range sourceCounts {
		pieItems = append(pieItems, opts.PieData{Name: source, Value: count})
	}
	pie.AddSeries("Trends", pieItems)

	// 2. Top trends by popularity
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top Trends"}))

	var barX []string
	var barY []opts.BarData
	for i, trend := range trends {
		if i >= topTrendBars {
			break
		}
		barX = append(barX, trend.Topic.Title)
		barY = append(barY, opts.BarData{Value: trend.Topic.PopularityScore})
	}
	bar.SetXAxis(barX).AddSeries("Popularity", barY)

	if err := pie.Render(w); err != nil && s.logger != nil {
		s.logger.Error("render pie", "error", err)
	}
	if err := bar.Render(w); err != nil && s.logger != nil {
		s.logger.Error("render bar", "error", err)
	}
}
