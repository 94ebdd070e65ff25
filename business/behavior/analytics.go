package behavior

import (
	"sort"

	"shopSense/domain"
)

// Analytics summarizes all recorded feedback: event totals, mean CTR and
// conversion rate across tracked products, the per-action histogram, and
// the top products by purchase count.
func (s *Store) Analytics() domain.BehaviorAnalytics {
	s.mu.RLock()
	uniqueUsers := len(s.users)
	s.mu.RUnlock()

	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	analytics := domain.BehaviorAnalytics{
		TotalFeedbackEvents: s.totalEvents,
		UniqueUsers:         uniqueUsers,
		TrackedProducts:     len(s.products),
		ActionBreakdown:     make(map[string]int, len(s.actionCounts)),
		TopProducts:         []domain.TopProductMetric{},
	}
	for action, count := range s.actionCounts {
		analytics.ActionBreakdown[action] = count
	}

	if len(s.products) == 0 {
		return analytics
	}

	var ctrSum, convSum float64
	ranked := make([]domain.TopProductMetric, 0, len(s.products))
	for productID, stats := range s.products {
		ctrSum += stats.ctr()
		convSum += stats.conversionRate()
		ranked = append(ranked, domain.TopProductMetric{
			ProductID: productID,
			Purchases: stats.purchases,
			CTR:       stats.ctr(),
		})
	}
	analytics.AverageCTR = ctrSum / float64(len(s.products))
	analytics.AverageConversionRate = convSum / float64(len(s.products))

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Purchases != ranked[j].Purchases {
			return ranked[i].Purchases > ranked[j].Purchases
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	analytics.TopProducts = ranked

	return analytics
}
