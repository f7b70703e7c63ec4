// Package export renders metrics snapshots into downloadable documents.
package export

import (
	"context"
	"io"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/metrics"
	"sellerconsole/internal/pkg/errs"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet      = "Summary"
	BucketsSheet      = "Revenue"
	TopProductsSheet  = "Top products"
	TopCustomersSheet = "Top customers"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultSheet    = "Sheet1"
	timeLayout      = "2006-01-02 15:04"
)

// XLSXExporter writes a snapshot as a workbook with one sheet per section.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) ContentType() string { return xlsxContentType }

func (e *XLSXExporter) FileExtension() string { return "xlsx" }

func (e *XLSXExporter) Export(ctx context.Context, snapshot *metrics.Snapshot, w io.Writer) error {
	if snapshot == nil {
		return errs.NewValueIsRequiredError("snapshot")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, SummarySheet); err != nil {
		return errors.Wrap(err, "rename summary sheet")
	}
	if err := writeSummary(f, snapshot); err != nil {
		return err
	}
	if err := writeBuckets(f, snapshot.Buckets); err != nil {
		return err
	}
	if err := writeRanking(f, TopProductsSheet, "Product", snapshot.TopProducts); err != nil {
		return err
	}
	if err := writeRanking(f, TopCustomersSheet, "Customer", snapshot.TopCustomers); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

func writeSummary(f *excelize.File, s *metrics.Snapshot) error {
	growth := any("n/a")
	if s.GrowthPct != nil {
		growth = *s.GrowthPct
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Seller", s.SellerID.String()},
		{"Window (days)", s.WindowDays},
		{"Window start", s.WindowStart.Format(timeLayout)},
		{"Window end", s.WindowEnd.Format(timeLayout)},
		{"Granularity", string(s.Granularity)},
		{"Total revenue", amount(s.TotalRevenue)},
		{"Total orders", s.TotalOrders},
		{"Recognized orders", s.RecognizedOrders},
		{"Average order value", amount(s.AverageOrderValue)},
		{"Previous window revenue", amount(s.PreviousWindowRevenue)},
		{"Previous window orders", s.PreviousWindowOrders},
		{"Growth %", growth},
	}
	return writeRows(f, SummarySheet, rows)
}

func writeBuckets(f *excelize.File, buckets []metrics.Bucket) error {
	if _, err := f.NewSheet(BucketsSheet); err != nil {
		return errors.Wrap(err, "create revenue sheet")
	}

	rows := make([][]any, 0, len(buckets)+1)
	rows = append(rows, []any{"Period", "Start", "Revenue", "Orders"})
	for _, b := range buckets {
		rows = append(rows, []any{b.Label, b.Start.Format(timeLayout), amount(b.Revenue), b.OrderCount})
	}
	return writeRows(f, BucketsSheet, rows)
}

func writeRanking(f *excelize.File, sheet, heading string, entries []metrics.RankedEntry) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "create %q sheet", sheet)
	}

	rows := make([][]any, 0, len(entries)+1)
	rows = append(rows, []any{"Rank", heading, "ID", "Units sold", "Revenue"})
	for i, e := range entries {
		rows = append(rows, []any{i + 1, e.Name, e.ID, e.UnitsSold, amount(e.Revenue)})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "cell name")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write %s row %d", sheet, i+1)
		}
	}
	return nil
}

func amount(m kernel.Money) float64 {
	return m.Amount().InexactFloat64()
}
