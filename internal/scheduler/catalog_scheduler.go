package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/dukatech/netstore-backend/internal/app/repository"
	"github.com/dukatech/netstore-backend/pkg/logger"
)

// CatalogScheduler re-reads the catalog file on a schedule so listing edits
// land without a restart.
type CatalogScheduler struct {
	cron        *cron.Cron
	catalogRepo repository.CatalogRepository
	spec        string
}

func NewCatalogScheduler(catalogRepo repository.CatalogRepository, spec string) *CatalogScheduler {
	return &CatalogScheduler{
		cron:        cron.New(),
		catalogRepo: catalogRepo,
		spec:        spec,
	}
}

// Start registers the reload job and runs the cron loop
func (s *CatalogScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled catalog reload", nil)

		if err := s.catalogRepo.Reload(); err != nil {
			// The previous catalog stays live on a failed reload
			logger.Error("Failed to reload catalog from scheduler", err)
			return
		}

		logger.Info("Successfully reloaded catalog from scheduler", nil)
	})

	if err != nil {
		logger.Error("Failed to add cron job for catalog reload", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog scheduler started successfully", map[string]interface{}{
		"spec": s.spec,
	})

	return nil
}

// Stop halts the scheduler
func (s *CatalogScheduler) Stop() {
	logger.Info("Stopping catalog scheduler...", nil)
	s.cron.Stop()
	logger.Info("Catalog scheduler stopped", nil)
}
