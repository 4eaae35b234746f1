package storage

import (
	"context"

	"neuronet/internal/model"
)

// Store keeps named architecture profiles and summaries of past builds.
type Store interface {
	Init(ctx context.Context) error
	SaveProfile(ctx context.Context, profile model.Profile) error
	GetProfile(ctx context.Context, name string) (model.Profile, bool, error)
	ListProfiles(ctx context.Context) ([]model.Profile, error)
	SaveBuildRecord(ctx context.Context, record model.BuildRecord) error
	GetBuildRecord(ctx context.Context, id string) (model.BuildRecord, bool, error)
	// ListBuildRecords returns the newest records first; limit <= 0 means all.
	ListBuildRecords(ctx context.Context, limit int) ([]model.BuildRecord, error)
}
