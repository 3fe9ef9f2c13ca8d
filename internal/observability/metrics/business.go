package metrics

import "time"

// RecordArticleTransition records an article status transition.
// Transition should be "submitted", "published", or "rejected".
func RecordArticleTransition(transition string) {
	ArticleTransitionsTotal.WithLabelValues(transition).Inc()
}

// RecordNotification records the result of one subscriber notification.
// Status should be "sent", "failed", or "skipped".
func RecordNotification(status string, duration time.Duration) {
	NotificationsTotal.WithLabelValues(status).Inc()
	if status != "skipped" {
		NotificationDuration.Observe(duration.Seconds())
	}
}

// DispatchStarted marks the beginning of an article fan-out. The returned
// function marks its completion and must be called exactly once.
func DispatchStarted() func() {
	ActiveDispatches.Inc()
	return ActiveDispatches.Dec
}

// RecordSharePost records the result of an external share webhook call.
func RecordSharePost(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	SharePostsTotal.WithLabelValues(status).Inc()
}

// RecordUserRegistered records a new account registration by role.
func RecordUserRegistered(role string) {
	UsersRegisteredTotal.WithLabelValues(role).Inc()
}

// RecordResetTokensPurged records reset tokens removed by the cleanup worker.
func RecordResetTokensPurged(count int64) {
	ResetTokensPurgedTotal.Add(float64(count))
}

// UpdateSubscriptionsTotal updates the current subscription count.
// This gauge should be updated periodically to reflect the current state.
func UpdateSubscriptionsTotal(count int) {
	SubscriptionsTotal.Set(float64(count))
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "select_articles", "insert_article").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
