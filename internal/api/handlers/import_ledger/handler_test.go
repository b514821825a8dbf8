package import_ledger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerTransfer "github.com/m04kA/SMC-EventLedger/internal/usecase/ledger_transfer"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeImporter struct {
	got *ledgerTransfer.Ledger
}

func (f *fakeImporter) Import(_ context.Context, ledger *ledgerTransfer.Ledger) (*ledgerTransfer.ImportResult, error) {
	f.got = ledger
	return &ledgerTransfer.ImportResult{
		Bookings: ledgerTransfer.CollectionResult{Imported: len(ledger.Bookings), Skipped: []ledgerTransfer.SkippedRecord{}},
		Payments: ledgerTransfer.CollectionResult{Skipped: []ledgerTransfer.SkippedRecord{}},
		Expenses: ledgerTransfer.CollectionResult{Skipped: []ledgerTransfer.SkippedRecord{}},
	}, nil
}

func TestHandle(t *testing.T) {
	importer := &fakeImporter{}
	h := NewHandler(importer, nopLogger{})

	body := `{"bookings": [{"_id": 1718000000000, "clientName": "Alice", "totalAmount": "100"}]}`
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ledger/import", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, importer.got)
	require.Len(t, importer.got.Bookings, 1)
	assert.Equal(t, ledgerTransfer.LegacyID("1718000000000"), importer.got.Bookings[0].ID)
	assert.Contains(t, rec.Body.String(), `"imported":1`)
}

func TestHandle_InvalidDump(t *testing.T) {
	importer := &fakeImporter{}
	h := NewHandler(importer, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ledger/import", strings.NewReader(`["not", "a", "ledger"]`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, importer.got)
}
