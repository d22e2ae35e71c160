package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/internal/domain/department"
	"github.com/samsalem6/hospital-records/internal/domain/patient"
	"github.com/samsalem6/hospital-records/internal/store"
	"github.com/samsalem6/hospital-records/pkg/metrics"
)

// Dataset is the single in-memory copy of the hospital's records. It
// is mutated in place by the services and persisted wholesale after
// every mutating operation; the engine assumes one synchronous caller.
type Dataset struct {
	Patients    []*patient.Patient
	Rooms       map[int]string
	Departments map[string]*department.Department
}

func NewDataset() *Dataset {
	return &Dataset{
		Rooms:       map[int]string{},
		Departments: map[string]*department.Department{},
	}
}

// FindPatient returns the first patient matching the identifier by
// exact name or normalized number, in insertion order.
func (d *Dataset) FindPatient(identifier string) *patient.Patient {
	for _, p := range d.Patients {
		if p.Matches(identifier) {
			return p
		}
	}
	return nil
}

func (d *Dataset) PatientNumbers() []string {
	nums := make([]string, 0, len(d.Patients))
	for _, p := range d.Patients {
		nums = append(nums, p.PatientNumber)
	}
	return nums
}

func (d *Dataset) removePatient(target *patient.Patient) bool {
	for i, p := range d.Patients {
		if p == target {
			d.Patients = append(d.Patients[:i], d.Patients[i+1:]...)
			return true
		}
	}
	return false
}

// core carries the collaborators every registry shares.
type core struct {
	data    *Dataset
	store   store.Gateway
	metrics *metrics.Collector
	audit   *AuditService
	log     *zap.Logger
}

// save persists the full dataset. The in-memory state is kept even if
// the write fails; the error is reported to the caller and the next
// successful save catches the file up.
func (c *core) save(operation string) error {
	doc := store.Snapshot(c.data.Patients, c.data.Departments)
	if err := c.store.Save(doc); err != nil {
		c.metrics.OperationsTotal.WithLabelValues(operation, "error").Inc()
		c.log.Error("failed to persist dataset",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return fmt.Errorf("persisting after %s: %w", operation, err)
	}
	c.metrics.OperationsTotal.WithLabelValues(operation, "success").Inc()
	return nil
}
