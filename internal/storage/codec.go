package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"neuronet/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// CurrentVersion is the version stamp new records are written with.
func CurrentVersion() model.VersionedRecord {
	return model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}
}

func EncodeProfile(p model.Profile) ([]byte, error) {
	return json.Marshal(p)
}

func DecodeProfile(data []byte) (model.Profile, error) {
	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.Profile{}, err
	}
	if err := checkVersion(profile.VersionedRecord); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

func EncodeBuildRecord(r model.BuildRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeBuildRecord(data []byte) (model.BuildRecord, error) {
	var record model.BuildRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.BuildRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.BuildRecord{}, err
	}
	return record, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}

// createdAtKey turns a record timestamp into the integer the listing sorts
// on. RFC3339Nano text drops trailing zeros and does not sort lexically.
func createdAtKey(createdAtUTC string) (int64, error) {
	if createdAtUTC == "" {
		return 0, nil
	}
	t, err := time.Parse(time.RFC3339Nano, createdAtUTC)
	if err != nil {
		return 0, fmt.Errorf("parse created_at_utc: %w", err)
	}
	return t.UnixNano(), nil
}
