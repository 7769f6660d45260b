package sheet

import (
	"context"
	"log/slog"
)

// ToggleDarkMode flips the dark mode preference and returns the new value.
func (s *Service) ToggleDarkMode(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.DarkMode = !s.state.DarkMode
	s.persist(ctx, "toggle_dark_mode")
	mutationsTotal.WithLabelValues("toggle_dark_mode", "ok").Inc()

	s.log.DebugContext(ctx, "dark mode toggled", slog.Bool("dark_mode", s.state.DarkMode))
	return s.state.DarkMode
}
