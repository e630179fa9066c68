// Package journal records provisioning runs in a local SQLite database so
// operators can see what happened on previous runs.
package journal

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/CodeMonkeyCybersecurity/tfl/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Journal struct {
	db *gorm.DB
}

// Open creates the database file and schema if needed.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), shared.DirPermStandard); err != nil {
		return nil, cerr.Wrapf(err, "create journal directory for %s", path)
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, cerr.Wrapf(err, "open journal %s", path)
	}
	if err := db.AutoMigrate(&Run{}, &StageRecord{}); err != nil {
		return nil, cerr.Wrap(err, "migrate journal schema")
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// BeginRun inserts run with the running outcome.
func (j *Journal) BeginRun(ctx context.Context, run *Run) error {
	run.Outcome = OutcomeRunning
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	return cerr.Wrap(j.db.WithContext(ctx).Create(run).Error, "record run start")
}

func (j *Journal) RecordStage(ctx context.Context, rec *StageRecord) error {
	return cerr.Wrap(j.db.WithContext(ctx).Create(rec).Error, "record stage")
}

// FinishRun stores the final outcome. failedStage and errMsg are empty on success.
func (j *Journal) FinishRun(ctx context.Context, runID, outcome, failedStage, errMsg string, finishedAt time.Time) error {
	res := j.db.WithContext(ctx).Model(&Run{}).Where("id = ?", runID).Updates(map[string]any{
		"outcome":      outcome,
		"failed_stage": failedStage,
		"error":        errMsg,
		"finished_at":  finishedAt,
	})
	if res.Error != nil {
		return cerr.Wrap(res.Error, "record run finish")
	}
	if res.RowsAffected == 0 {
		return cerr.Newf("run %s not found in journal", runID)
	}
	return nil
}

// Recent returns up to limit runs, newest first, with their stages.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := j.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, cerr.Wrap(err, "list runs")
}

// Get finds a run by ID or unique ID prefix.
func (j *Journal) Get(ctx context.Context, idOrPrefix string) (*Run, error) {
	var runs []Run
	err := j.db.WithContext(ctx).
		Preload("Stages", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Where("id LIKE ?", idOrPrefix+"%").
		Limit(2).
		Find(&runs).Error
	if err != nil {
		return nil, cerr.Wrap(err, "find run")
	}
	switch len(runs) {
	case 0:
		return nil, cerr.Newf("no run matches %q", idOrPrefix)
	case 1:
		return &runs[0], nil
	default:
		return nil, cerr.Newf("run prefix %q is ambiguous", idOrPrefix)
	}
}
