// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/spinodal/config"
	"gopkg.in/yaml.v3"
)

// Manifest identifies a run and records the parameters that produced it.
type Manifest struct {
	RunID      string            `yaml:"run_id"`
	Created    time.Time         `yaml:"created"`
	Parameters config.Parameters `yaml:"parameters"`
	Completed  int               `yaml:"completed_steps"`
	Status     string            `yaml:"status"` // "running", "done", "failed", "stopped"
}

// NewManifest stamps p with a fresh random run id and the current UTC time.
func NewManifest(p config.Parameters) Manifest {
	return Manifest{
		RunID:      uuid.NewString(),
		Created:    time.Now().UTC().Truncate(time.Second),
		Parameters: p,
		Status:     "running",
	}
}

// WriteManifest writes m to dir/run.yaml, creating dir if needed.
func WriteManifest(dir string, m Manifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store.WriteManifest: %w", err)
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("store.WriteManifest: %w", err)
	}
	if err = os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return fmt.Errorf("store.WriteManifest: %w", err)
	}

	return nil
}

// ReadManifest loads dir/run.yaml and checks the run id.
func ReadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return Manifest{}, fmt.Errorf("store.ReadManifest: %w", err)
	}
	var m Manifest
	if err = yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("store.ReadManifest: %v: %w", err, ErrMalformed)
	}
	if _, err = uuid.Parse(m.RunID); err != nil {
		return Manifest{}, fmt.Errorf("store.ReadManifest: run_id %q: %w", m.RunID, ErrMalformed)
	}

	return m, nil
}
