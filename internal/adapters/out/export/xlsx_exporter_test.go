package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"sellerconsole/internal/adapters/out/export"
	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/metrics"
	"sellerconsole/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSnapshot() *metrics.Snapshot {
	growth := 50.0
	start := time.Date(2026, 10, 9, 10, 0, 0, 0, time.UTC)
	return &metrics.Snapshot{
		SellerID:              kernel.MustUUID("0b5e8d2c-5f3a-4c1e-9a6b-2d7f8e9c1a3b"),
		WindowDays:            7,
		WindowStart:           start,
		WindowEnd:             start.AddDate(0, 0, 7),
		Granularity:           metrics.Day,
		TotalRevenue:          kernel.MustMoney("150"),
		TotalOrders:           3,
		RecognizedOrders:      2,
		AverageOrderValue:     kernel.MustMoney("75"),
		PreviousWindowRevenue: kernel.MustMoney("100"),
		PreviousWindowOrders:  1,
		GrowthPct:             &growth,
		Buckets: []metrics.Bucket{
			{Label: "2026-10-09", Start: start, Revenue: kernel.MustMoney("100"), OrderCount: 2},
			{Label: "2026-10-10", Start: start.AddDate(0, 0, 1), Revenue: kernel.MustMoney("50"), OrderCount: 1},
		},
		TopProducts: []metrics.RankedEntry{
			{ID: "sku-1", Name: "Basmati 5kg", UnitsSold: 4, Revenue: kernel.MustMoney("120")},
		},
		TopCustomers: []metrics.RankedEntry{
			{ID: "manual:Sharma Stores", Name: "Sharma Stores", Revenue: kernel.MustMoney("150")},
		},
	}
}

func openWorkbook(t *testing.T, content []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestXLSXExporter_Metadata(t *testing.T) {
	e := export.NewXLSXExporter()
	assert.Equal(t, "xlsx", e.FileExtension())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", e.ContentType())
}

func TestXLSXExporter_Export_WritesAllSheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewXLSXExporter().Export(t.Context(), sampleSnapshot(), &buf))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t,
		[]string{export.SummarySheet, export.BucketsSheet, export.TopProductsSheet, export.TopCustomersSheet},
		f.GetSheetList())

	summary, err := f.GetRows(export.SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 13)
	assert.Equal(t, []string{"Seller", "0b5e8d2c-5f3a-4c1e-9a6b-2d7f8e9c1a3b"}, summary[1])
	assert.Equal(t, []string{"Granularity", "day"}, summary[5])

	revenue, err := f.GetCellValue(export.SummarySheet, "B7", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "150", revenue)

	growth, err := f.GetCellValue(export.SummarySheet, "B13", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "50", growth)

	buckets, err := f.GetRows(export.BucketsSheet)
	require.NoError(t, err)
	require.Len(t, buckets, 3)
	assert.Equal(t, []string{"Period", "Start", "Revenue", "Orders"}, buckets[0])
	assert.Equal(t, "2026-10-10", buckets[2][0])
	assert.Equal(t, "1", buckets[2][3])

	products, err := f.GetRows(export.TopProductsSheet)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, []string{"1", "Basmati 5kg", "sku-1", "4", "120"}, products[1])

	customers, err := f.GetRows(export.TopCustomersSheet)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "Sharma Stores", customers[1][1])
}

func TestXLSXExporter_Export_NoGrowth(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.GrowthPct = nil
	snapshot.Buckets = nil

	var buf bytes.Buffer
	require.NoError(t, export.NewXLSXExporter().Export(t.Context(), snapshot, &buf))

	f := openWorkbook(t, buf.Bytes())
	growth, err := f.GetCellValue(export.SummarySheet, "B13")
	require.NoError(t, err)
	assert.Equal(t, "n/a", growth)

	buckets, err := f.GetRows(export.BucketsSheet)
	require.NoError(t, err)
	assert.Len(t, buckets, 1)
}

func TestXLSXExporter_Export_Errors(t *testing.T) {
	var buf bytes.Buffer
	err := export.NewXLSXExporter().Export(t.Context(), nil, &buf)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err = export.NewXLSXExporter().Export(ctx, sampleSnapshot(), &buf)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
