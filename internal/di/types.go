package di

import (
	"errors"

	"github.com/aristath/exportadvisor/internal/clients/blobstore"
	"github.com/aristath/exportadvisor/internal/database"
	"github.com/aristath/exportadvisor/internal/modules/advisory"
	documentation "github.com/aristath/exportadvisor/internal/modules/documentation"
	"github.com/aristath/exportadvisor/internal/modules/farmers"
	"github.com/aristath/exportadvisor/internal/modules/marketdata"
	"github.com/aristath/exportadvisor/internal/modules/snapshots"
	"github.com/aristath/exportadvisor/internal/scheduler"
)

// Container holds all dependencies
type Container struct {
	// Databases
	MarketDB    *database.DB // market insights, country imports, pricing snapshots
	DocumentsDB *database.DB // generated export documentation (append-only)
	FarmersDB   *database.DB // farmer profiles, export orders, monthly earnings

	// Repositories
	MarketRepo   *marketdata.Repository
	DocumentRepo *documentation.Repository
	SnapshotRepo *snapshots.Repository
	FarmerRepo   *farmers.Repository

	// Services
	Engine               *advisory.Engine
	DocumentationService *documentation.Service
	SnapshotService      *snapshots.Service
	FarmerService        *farmers.Service

	// Object storage (nil when no bucket is configured)
	BlobClient *blobstore.Client
	BlobWriter *blobstore.Writer

	Scheduler *scheduler.Scheduler
}

// JobInstances holds the registered jobs so they can be triggered manually
type JobInstances struct {
	PricingSnapshots scheduler.Job
	WALCheckpoints   scheduler.Job
	Maintenance      scheduler.Job
}

// All returns every job keyed by name
func (j *JobInstances) All() map[string]scheduler.Job {
	out := make(map[string]scheduler.Job, 3)
	if j == nil {
		return out
	}
	for _, job := range []scheduler.Job{j.PricingSnapshots, j.WALCheckpoints, j.Maintenance} {
		if job != nil {
			out[job.Name()] = job
		}
	}
	return out
}

// Databases returns the open databases keyed by name
func (c *Container) Databases() map[string]*database.DB {
	out := make(map[string]*database.DB, 3)
	if c.MarketDB != nil {
		out["market"] = c.MarketDB
	}
	if c.DocumentsDB != nil {
		out["documents"] = c.DocumentsDB
	}
	if c.FarmersDB != nil {
		out["farmers"] = c.FarmersDB
	}
	return out
}

// Close closes every open database
func (c *Container) Close() error {
	var errs []error
	for _, db := range []*database.DB{c.MarketDB, c.DocumentsDB, c.FarmersDB} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
