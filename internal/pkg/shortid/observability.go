package shortid

import "exusiai.dev/roster-backend/internal/pkg/observability"

func observeAttempts(n int) {
	observability.ShortIDIssueAttempts.Observe(float64(n))
}

func observeFallback() {
	observability.ShortIDFallbacks.Inc()
}
