package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Series is a named array of samples produced by a simulation run, e.g. the
// time grid or one state variable sampled on it.
type Series struct {
	VersionedRecord
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// RunMeta describes one provisioned trial inside a data store.
type RunMeta struct {
	VersionedRecord
	RunID       string `json:"run_id"`
	Model       string `json:"model"`
	Trial       int    `json:"trial"`
	Seed        int64  `json:"seed"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at_utc"`
}
