package domain

import "time"

// BuildRecordFileName is the name of the index of completed builds inside the cache directory.
const BuildRecordFileName = "builds.json"

// BuildRecord describes a native build that was installed into the cache.
type BuildRecord struct {
	Key        string    `json:"key,omitzero"`
	Name       string    `json:"name,omitzero"`
	Source     string    `json:"source,omitzero"`
	InstallDir string    `json:"install_dir,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
