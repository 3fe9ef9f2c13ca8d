package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordArticleTransition(t *testing.T) {
	tests := []struct {
		name       string
		transition string
	}{
		{
			name:       "submitted",
			transition: "submitted",
		},
		{
			name:       "published",
			transition: "published",
		},
		{
			name:       "rejected",
			transition: "rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := counterValue(t, ArticleTransitionsTotal.WithLabelValues(tt.transition))
			RecordArticleTransition(tt.transition)
			after := counterValue(t, ArticleTransitionsTotal.WithLabelValues(tt.transition))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestRecordNotification(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		duration time.Duration
	}{
		{
			name:     "sent",
			status:   "sent",
			duration: 200 * time.Millisecond,
		},
		{
			name:     "failed",
			status:   "failed",
			duration: 30 * time.Second,
		},
		{
			name:     "skipped",
			status:   "skipped",
			duration: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := counterValue(t, NotificationsTotal.WithLabelValues(tt.status))
			RecordNotification(tt.status, tt.duration)
			after := counterValue(t, NotificationsTotal.WithLabelValues(tt.status))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestDispatchStarted(t *testing.T) {
	assert.NotPanics(t, func() {
		done := DispatchStarted()
		done()
	})
}

func TestRecordSharePost(t *testing.T) {
	tests := []struct {
		name    string
		success bool
		status  string
	}{
		{
			name:    "success",
			success: true,
			status:  "success",
		},
		{
			name:    "failure",
			success: false,
			status:  "failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := counterValue(t, SharePostsTotal.WithLabelValues(tt.status))
			RecordSharePost(tt.success)
			after := counterValue(t, SharePostsTotal.WithLabelValues(tt.status))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestRecordUserRegistered(t *testing.T) {
	tests := []struct {
		name string
		role string
	}{
		{
			name: "reader",
			role: "reader",
		},
		{
			name: "journalist",
			role: "journalist",
		},
		{
			name: "editor",
			role: "editor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordUserRegistered(tt.role)
			})
		})
	}
}

func TestRecordResetTokensPurged(t *testing.T) {
	tests := []struct {
		name  string
		count int64
	}{
		{
			name:  "none purged",
			count: 0,
		},
		{
			name:  "some purged",
			count: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := counterValue(t, ResetTokensPurgedTotal)
			RecordResetTokensPurged(tt.count)
			after := counterValue(t, ResetTokensPurgedTotal)
			assert.Equal(t, before+float64(tt.count), after)
		})
	}
}

func TestUpdateSubscriptionsTotal(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{
			name:  "zero subscriptions",
			count: 0,
		},
		{
			name:  "some subscriptions",
			count: 250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateSubscriptionsTotal(tt.count)
			})
		})
	}
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		duration  time.Duration
	}{
		{
			name:      "select query",
			operation: "select_articles",
			duration:  10 * time.Millisecond,
		},
		{
			name:      "insert query",
			operation: "insert_article",
			duration:  5 * time.Millisecond,
		},
		{
			name:      "slow query",
			operation: "complex_join",
			duration:  500 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordDBQuery(tt.operation, tt.duration)
			})
		})
	}
}

func TestUpdateDBConnectionStats(t *testing.T) {
	tests := []struct {
		name   string
		active int
		idle   int
	}{
		{
			name:   "no connections",
			active: 0,
			idle:   0,
		},
		{
			name:   "some active",
			active: 5,
			idle:   10,
		},
		{
			name:   "all active",
			active: 25,
			idle:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateDBConnectionStats(tt.active, tt.idle)
			})
		})
	}
}

func TestMetricsFunctions_AllCallable(t *testing.T) {
	// Test that all functions can be called in sequence without panic
	assert.NotPanics(t, func() {
		RecordArticleTransition("published")
		RecordNotification("sent", 1*time.Second)
		done := DispatchStarted()
		done()
		RecordSharePost(true)
		RecordUserRegistered("reader")
		RecordResetTokensPurged(3)
		UpdateSubscriptionsTotal(100)
		RecordDBQuery("test_operation", 10*time.Millisecond)
		UpdateDBConnectionStats(5, 10)
	})
}
