package store

import (
	"encoding/json"
	"errors"

	"github.com/nishs1729/simulation-manager/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeSeries(s model.Series) ([]byte, error) {
	return json.Marshal(s)
}

func DecodeSeries(data []byte) (model.Series, error) {
	var series model.Series
	if err := json.Unmarshal(data, &series); err != nil {
		return model.Series{}, err
	}
	if err := checkVersion(series.VersionedRecord); err != nil {
		return model.Series{}, err
	}
	return series, nil
}

func EncodeRunMeta(m model.RunMeta) ([]byte, error) {
	return json.Marshal(m)
}

func DecodeRunMeta(data []byte) (model.RunMeta, error) {
	var meta model.RunMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return model.RunMeta{}, err
	}
	if err := checkVersion(meta.VersionedRecord); err != nil {
		return model.RunMeta{}, err
	}
	return meta, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
