package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/internal/identity"
	"github.com/samsalem6/hospital-records/internal/store"
	"github.com/samsalem6/hospital-records/pkg/metrics"
)

// Directory is the composition root of the records engine. It loads
// the persisted document into the shared dataset and wires the
// registries that the menu layer consumes.
type Directory struct {
	core *core

	Patients    *PatientService
	Departments *DepartmentService
	Billing     *BillingService
	Procedures  *ProcedureService
}

func NewDirectory(gw store.Gateway, audit *AuditService, m *metrics.Collector, log *zap.Logger) (*Directory, error) {
	doc, err := gw.Load()
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}

	patients, rooms, departments := store.Materialize(doc)
	data := NewDataset()
	data.Patients = patients
	data.Rooms = rooms
	data.Departments = departments

	c := &core{
		data:    data,
		store:   gw,
		metrics: m,
		audit:   audit,
		log:     log,
	}

	log.Info("dataset loaded",
		zap.Int("patients", len(patients)),
		zap.Int("departments", len(departments)),
		zap.Int("occupied_rooms", len(rooms)),
	)

	return &Directory{
		core:        c,
		Patients:    NewPatientService(c, identity.NewAllocator()),
		Departments: NewDepartmentService(c),
		Billing:     NewBillingService(c),
		Procedures:  NewProcedureService(c),
	}, nil
}

// Dataset exposes the shared state for read-only views.
func (d *Directory) Dataset() *Dataset {
	return d.core.data
}

// Save persists the full dataset on demand (the explicit menu action;
// every mutating operation already saves implicitly).
func (d *Directory) Save() error {
	return d.core.save("manual_save")
}
