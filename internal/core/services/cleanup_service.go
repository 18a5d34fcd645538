package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// CleanupService periodically purges expired sessions
type CleanupService struct {
	sessions *SessionService
	cron     *cron.Cron
	spec     string
}

// NewCleanupService creates a new cleanup service. spec is a cron
// expression; an empty spec falls back to hourly.
func NewCleanupService(sessions *SessionService, spec string) *CleanupService {
	if spec == "" {
		spec = "@hourly"
	}
	return &CleanupService{
		sessions: sessions,
		cron:     cron.New(),
		spec:     spec,
	}
}

// Start registers the cleanup job and starts the scheduler
func (s *CleanupService) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.run)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🧹 Session cleanup scheduled (%s)", s.spec)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Session cleanup stopped")
}

func (s *CleanupService) run() {
	removed, err := s.sessions.CleanupExpired(context.Background())
	if err != nil {
		log.Printf("❌ Session cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🗑️ Removed %d expired sessions", removed)
	}
}
