// Package backup periodically copies the catalog export to object storage.
package backup

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/weddingmoments/studio-backend/internal/catalog/service"
	"github.com/weddingmoments/studio-backend/internal/logging"
)

// Exporter produces the catalog file to back up.
type Exporter interface {
	Export() (service.ExportFile, error)
}

type Uploader interface {
	Upload(ctx context.Context, key string, data []byte) error
}

type Scheduler struct {
	cron     *cron.Cron
	exporter Exporter
	uploader Uploader
	prefix   string
	now      func() time.Time
	log      *logging.Logger
}

func NewScheduler(exporter Exporter, uploader Uploader, prefix string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		exporter: exporter,
		uploader: uploader,
		prefix:   prefix,
		now:      time.Now,
		log:      logging.Background("catalog-backup"),
	}
}

// Start registers the backup job on spec (six fields, seconds first) and
// starts the cron runner.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
		return fmt.Errorf("failed to create backup job: %w", err)
	}

	s.log.Infof("start_scheduler", "schedule=%q", spec)
	s.cron.Start()
	return nil
}

// Stop waits for a running backup to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := s.RunOnce(ctx); err != nil {
		s.log.Error("backup_catalog", err)
	}
}

// RunOnce uploads the current export and returns its object key.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	file, err := s.exporter.Export()
	if err != nil {
		return "", fmt.Errorf("export catalog: %w", err)
	}

	key := path.Join(s.prefix, s.now().UTC().Format("2006/01/02"), file.Filename)
	if err := s.uploader.Upload(ctx, key, file.Data); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	s.log.Infof("backup_catalog", "key=%s bytes=%d", key, len(file.Data))
	return key, nil
}
