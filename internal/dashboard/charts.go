package dashboard

import (
	"net/http"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/qepting91/reddit-video-feed/internal/storage"
)

const topSubreddits = 10

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	records, err := storage.LoadJournal(s.dataFile)
	if err != nil {
		s.log.Error("Journal read failed", "path", s.dataFile, "err", err)
		http.Error(w, "journal unavailable", http.StatusInternalServerError)
		return
	}

	counts := make(map[string]int)
	ups := make(map[string]int)
	for _, rec := range records {
		counts[rec.Subreddit]++
		ups[rec.Subreddit] += rec.Ups
	}
	subs := make([]string, 0, len(counts))
	for sub := range counts {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		if counts[subs[i]] != counts[subs[j]] {
			return counts[subs[i]] > counts[subs[j]]
		}
		return subs[i] < subs[j]
	})

	// 1. Subreddit share of served videos
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Subreddit Share", Subtitle: "videos served"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)
	var pieItems []opts.PieData
	for _, sub := range subs {
		pieItems = append(pieItems, opts.PieData{Name: sub, Value: counts[sub]})
	}
	pie.AddSeries("Videos", pieItems)

	// 2. Upvotes carried by the busiest subreddits
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Upvotes by Subreddit"}))
	var barX []string
	var barY []opts.BarData
	for i, sub := range subs {
		if i == topSubreddits {
			break
		}
		barX = append(barX, sub)
		barY = append(barY, opts.BarData{Value: ups[sub]})
	}
	bar.SetXAxis(barX).AddSeries("Upvotes", barY)

	pie.Render(w)
	bar.Render(w)
}
