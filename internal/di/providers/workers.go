package providers

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/samber/do/v2"

	"github.com/myscribe/myscribe-server/internal/backup"
	"github.com/myscribe/myscribe-server/internal/config"
	"github.com/myscribe/myscribe-server/internal/logger"
	"github.com/myscribe/myscribe-server/internal/mdns"
)

const (
	backupInterval = 24 * time.Hour
	backupKeep     = 7
)

// BackupJob runs periodic database backups.
type BackupJob struct {
	service *backup.Service
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *BackupJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideBackupJob provides the periodic backup worker. The first backup
// runs one interval after startup.
func ProvideBackupJob(i do.Injector) (*BackupJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	service := backup.NewService(
		storeHandle.Store,
		filepath.Join(cfg.Data.BasePath, "backups"),
		backupKeep,
		log.Logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(backupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := service.Create(ctx); err != nil {
					log.Error("Scheduled backup failed", "error", err)
					continue
				}
				if _, err := service.Prune(); err != nil {
					log.Error("Backup pruning failed", "error", err)
				}
			}
		}
	}()

	return &BackupJob{service: service, cancel: cancel}, nil
}

// MDNSServiceHandle wraps the mDNS service with Shutdownable.
type MDNSServiceHandle struct {
	*mdns.Service
}

// Shutdown implements do.Shutdownable.
func (h *MDNSServiceHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideMDNSService provides mDNS advertisement for the HTTP API. A
// failed start is logged and tolerated; multicast is often unavailable
// in containers.
func ProvideMDNSService(i do.Injector) (*MDNSServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	service := mdns.NewService(log.Logger)

	port := 8080
	if p, err := strconv.Atoi(cfg.Server.Port); err == nil {
		port = p
	}
	if err := service.Start(port); err != nil {
		log.Warn("mDNS advertisement unavailable", "error", err)
	}

	return &MDNSServiceHandle{Service: service}, nil
}
