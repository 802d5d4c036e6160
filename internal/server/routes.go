package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Portfolio
	mux.HandleFunc("/api/positions", s.app.PositionsHandler.ServeHTTP)
	mux.HandleFunc("/api/positions/import", s.app.PositionsHandler.HandleImport)

	// Reports and notification history
	mux.HandleFunc("/api/reports/generate", s.app.ReportsHandler.HandleGenerate)
	mux.HandleFunc("/api/reports/history", s.app.ReportsHandler.HandleHistory)
	mux.HandleFunc("/api/reports/history/opened", s.app.ReportsHandler.HandleMarkOpened)
	mux.HandleFunc("/api/reports/snapshot", s.app.ReportsHandler.HandleClearSnapshot)

	// Notification settings and scheduling
	mux.HandleFunc("/api/settings", s.app.SettingsHandler.ServeHTTP)
	mux.HandleFunc("/api/notifications/schedule", s.app.NotificationsHandler.HandleSchedule)
	mux.HandleFunc("/api/notifications/scheduled", s.app.NotificationsHandler.HandleScheduled)
	mux.HandleFunc("/api/notifications/cancel", s.app.NotificationsHandler.HandleCancelAll)
	mux.HandleFunc("/api/notifications/test", s.app.NotificationsHandler.HandleTest)
	mux.HandleFunc("/api/notifications/permissions", s.app.NotificationsHandler.HandlePermissions)

	// Service endpoints
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)
	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
