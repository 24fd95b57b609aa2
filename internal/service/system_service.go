package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db        *sql.DB
	snapshots SnapshotProvider
	maxAge    time.Duration
	now       func() time.Time
}

// HealthStatus describes database and refresh state.
type HealthStatus struct {
	Database        string     `json:"database"`
	LastRefresh     *time.Time `json:"lastRefresh"`
	RefreshAgeSecs  *float64   `json:"refreshAgeSeconds"`
	SnapshotCurrent bool       `json:"snapshotCurrent"`
}

// NewSystemService creates a new SystemService. A snapshot older than maxAge
// is reported as stale. db may be nil when holdings come from a file.
func NewSystemService(db *sql.DB, snapshots SnapshotProvider, maxAge time.Duration) *SystemService {
	return &SystemService{
		db:        db,
		snapshots: snapshots,
		maxAge:    maxAge,
		now:       time.Now,
	}
}

// CheckHealth checks the database connection and the age of the current snapshot.
// The status is filled in even when an error is returned.
func (s *SystemService) CheckHealth() (HealthStatus, error) {
	status := HealthStatus{Database: "not configured"}

	if s.db != nil {
		if err := database.HealthCheck(s.db); err != nil {
			status.Database = "unreachable"
			return status, fmt.Errorf("database: %w", err)
		}
		status.Database = "connected"
	}

	snap, err := s.snapshots.Snapshot()
	if err != nil {
		return status, err
	}

	generated := snap.GeneratedAt
	age := s.now().Sub(generated).Seconds()
	status.LastRefresh = &generated
	status.RefreshAgeSecs = &age
	status.SnapshotCurrent = s.maxAge <= 0 || s.now().Sub(generated) <= s.maxAge

	return status, nil
}

// CheckVersion returns the application version.
func (s *SystemService) CheckVersion() (string, error) {
	if version.Version == "" {
		return "", apperrors.ErrFailedToGetVersionInfo
	}
	return version.Version, nil
}
