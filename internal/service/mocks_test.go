package service

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/internal/store"
	"github.com/samsalem6/hospital-records/pkg/metrics"
)

// MockGateway lets each test script the persistence layer with
// function fields; unset fields behave like an empty, healthy store.
type MockGateway struct {
	LoadFunc func() (*store.Document, error)
	SaveFunc func(*store.Document) error

	SaveCalls int
	LastSaved *store.Document
}

var _ store.Gateway = (*MockGateway)(nil)

func (m *MockGateway) Load() (*store.Document, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return store.EmptyDocument(), nil
}

func (m *MockGateway) Save(doc *store.Document) error {
	m.SaveCalls++
	m.LastSaved = doc
	if m.SaveFunc != nil {
		return m.SaveFunc(doc)
	}
	return nil
}

func newTestDirectory(t *testing.T, gw store.Gateway) *Directory {
	t.Helper()

	if gw == nil {
		gw = &MockGateway{}
	}
	m := metrics.NewCollectorWith(prometheus.NewRegistry(), "test")
	log := zap.NewNop()
	audit := NewAuditService(m, log)
	t.Cleanup(audit.Shutdown)

	dir, err := NewDirectory(gw, audit, m, log)
	require.NoError(t, err)
	return dir
}
