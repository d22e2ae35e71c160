package store

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/pkg/metrics"
)

// Gateway reads and writes the entire dataset as one document.
type Gateway interface {
	// Load returns the persisted document. A missing or unreadable
	// backing file yields an empty document, not an error.
	Load() (*Document, error)
	// Save overwrites the backing file with the full document.
	Save(*Document) error
}

type FileStore struct {
	path    string
	log     *zap.Logger
	metrics *metrics.Collector
}

func NewFileStore(path string, m *metrics.Collector, log *zap.Logger) *FileStore {
	return &FileStore{path: path, metrics: m, log: log}
}

var _ Gateway = (*FileStore)(nil)

// Load reads the backing file. Absence or a parse failure is recovered
// silently by substituting an empty document; the engine proceeds with
// empty registries.
func (s *FileStore) Load() (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("backing file unreadable, starting empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		s.metrics.LoadFallbacks.Inc()
		return EmptyDocument(), nil
	}

	doc := EmptyDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		s.log.Warn("backing file malformed, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		s.metrics.LoadFallbacks.Inc()
		return EmptyDocument(), nil
	}

	if doc.Patients == nil {
		doc.Patients = []PatientRecord{}
	}
	if doc.Departments == nil {
		doc.Departments = map[string]DepartmentRecord{}
	}

	return doc, nil
}

func (s *FileStore) Save(doc *Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.metrics.SaveErrorsTotal.Inc()
		return fmt.Errorf("encoding document: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.metrics.SaveErrorsTotal.Inc()
		return fmt.Errorf("writing %s: %w", s.path, err)
	}

	s.metrics.SavesTotal.Inc()
	return nil
}
