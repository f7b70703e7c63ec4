package services

import (
	"context"
	"sort"
	"time"

	"sellerconsole/internal/core/domain/model/kernel"
	"sellerconsole/internal/core/domain/model/metrics"
	"sellerconsole/internal/core/domain/model/order"
	"sellerconsole/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// DefaultTopN bounds the product and customer rankings.
	DefaultTopN = 10

	// MaxWindowDays bounds the trailing window accepted by Compute.
	MaxWindowDays = 3660

	dayLabelLayout   = "2006-01-02"
	monthLabelLayout = "2006-01"
)

// RecognizedRevenueStatuses are the order statuses whose totalAmount counts as
// revenue. The same set is applied to totals, buckets, rankings and averages.
func RecognizedRevenueStatuses() []order.Status {
	return []order.Status{order.Delivered}
}

func isRecognized(s order.Status) bool {
	for _, recognized := range RecognizedRevenueStatuses() {
		if s == recognized {
			return true
		}
	}
	return false
}

// MetricsAggregator computes a MetricsSnapshot from a seller's orders.
//
// Computation rules:
//   - windowStart = now - windowDays, previousWindowStart = windowStart - windowDays
//   - current orders have createdAt >= windowStart, previous orders fall in
//     [previousWindowStart, windowStart)
//   - growthPct is nil when previous revenue is zero
//   - buckets cover the whole current window with no gaps, in the aggregator's
//     time zone, so bucket revenue sums to totalRevenue
//   - rankings sort by revenue descending, then id ascending
//
// Compute never mutates its input and may run concurrently.
type MetricsAggregator struct {
	location *time.Location
	topN     int
}

// NewMetricsAggregator creates an aggregator bucketing in location (UTC when nil).
func NewMetricsAggregator(location *time.Location) MetricsAggregator {
	if location == nil {
		location = time.UTC
	}
	return MetricsAggregator{location: location, topN: DefaultTopN}
}

// Compute builds the snapshot for sellerID.
//
// Parameters:
//   - ctx: checked between phases; a cancelled context yields ctx.Err() and no snapshot
//   - sellerID: the seller the orders belong to
//   - orders: the seller's orders, at least those created since previousWindowStart.
//     Older orders are ignored, so passing the full history is fine.
//   - now: the window end
//   - windowDays: window length in days, 1..MaxWindowDays
//
// Returns:
//   - *metrics.Snapshot: the computed snapshot
//   - error: a validation error for an out of range window, or a context error
func (a MetricsAggregator) Compute(
	ctx context.Context,
	sellerID kernel.UUID,
	orders []*order.Order,
	now time.Time,
	windowDays int,
) (*metrics.Snapshot, error) {
	if windowDays < 1 || windowDays > MaxWindowDays {
		return nil, errs.NewValueIsOutOfRangeError("windowDays", windowDays, 1, MaxWindowDays)
	}

	window := time.Duration(windowDays) * 24 * time.Hour
	windowStart := now.Add(-window)
	previousStart := windowStart.Add(-window)

	var current, previous []*order.Order
	for _, o := range orders {
		if o.Validate() != nil {
			continue
		}
		createdAt := o.CreatedAt()
		switch {
		case !createdAt.Before(windowStart):
			current = append(current, o)
		case !createdAt.Before(previousStart):
			previous = append(previous, o)
		}
	}
	sort.SliceStable(current, func(i, j int) bool {
		if !current[i].CreatedAt().Equal(current[j].CreatedAt()) {
			return current[i].CreatedAt().Before(current[j].CreatedAt())
		}
		return current[i].ID().String() < current[j].ID().String()
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	totalRevenue, recognized := recognizedRevenue(current)
	previousRevenue, _ := recognizedRevenue(previous)

	snapshot := &metrics.Snapshot{
		SellerID:              sellerID,
		WindowDays:            windowDays,
		WindowStart:           windowStart,
		WindowEnd:             now,
		Granularity:           metrics.GranularityFor(windowDays),
		TotalRevenue:          toMoney(totalRevenue),
		TotalOrders:           len(current),
		RecognizedOrders:      recognized,
		AverageOrderValue:     kernel.Zero(),
		PreviousWindowRevenue: toMoney(previousRevenue),
		PreviousWindowOrders:  len(previous),
		GrowthPct:             growthPct(totalRevenue, previousRevenue),
	}
	if recognized > 0 {
		snapshot.AverageOrderValue = toMoney(totalRevenue.Div(decimal.NewFromInt(int64(recognized))).Round(2))
	}

	snapshot.Buckets = a.buckets(current, windowStart, now, snapshot.Granularity)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot.TopProducts, snapshot.TopCustomers = a.rankings(current)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func recognizedRevenue(orders []*order.Order) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, o := range orders {
		if !isRecognized(o.Status()) {
			continue
		}
		total = total.Add(o.TotalAmount().Amount())
		count++
	}
	return total, count
}

// growthPct returns nil when previous is zero, otherwise the percentage change
// rounded to two decimals.
func growthPct(current, previous decimal.Decimal) *float64 {
	if previous.IsZero() {
		return nil
	}
	pct := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	return &pct
}

func (a MetricsAggregator) buckets(
	orders []*order.Order,
	windowStart, windowEnd time.Time,
	granularity metrics.Granularity,
) []metrics.Bucket {
	end := windowEnd
	if n := len(orders); n > 0 && orders[n-1].CreatedAt().After(end) {
		end = orders[n-1].CreatedAt()
	}

	type accumulator struct {
		revenue decimal.Decimal
		count   int
	}
	var (
		starts []time.Time
		acc    []accumulator
	)
	for start := a.truncate(windowStart, granularity); !start.After(end); start = a.next(start, granularity) {
		starts = append(starts, start)
		acc = append(acc, accumulator{revenue: decimal.Zero})
	}

	idx := 0
	for _, o := range orders {
		createdAt := o.CreatedAt().In(a.location)
		for idx+1 < len(starts) && !createdAt.Before(starts[idx+1]) {
			idx++
		}
		acc[idx].count++
		if isRecognized(o.Status()) {
			acc[idx].revenue = acc[idx].revenue.Add(o.TotalAmount().Amount())
		}
	}

	layout := dayLabelLayout
	if granularity == metrics.Month {
		layout = monthLabelLayout
	}

	out := make([]metrics.Bucket, len(starts))
	for i, start := range starts {
		out[i] = metrics.Bucket{
			Label:      start.Format(layout),
			Start:      start,
			Revenue:    toMoney(acc[i].revenue),
			OrderCount: acc[i].count,
		}
	}
	return out
}

func (a MetricsAggregator) truncate(t time.Time, granularity metrics.Granularity) time.Time {
	t = t.In(a.location)
	if granularity == metrics.Month {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, a.location)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, a.location)
}

func (a MetricsAggregator) next(start time.Time, granularity metrics.Granularity) time.Time {
	if granularity == metrics.Month {
		return start.AddDate(0, 1, 0)
	}
	return start.AddDate(0, 0, 1)
}

type rankAccumulator struct {
	id      string
	name    string
	units   int
	revenue decimal.Decimal
}

func (a MetricsAggregator) rankings(orders []*order.Order) ([]metrics.RankedEntry, []metrics.RankedEntry) {
	products := map[string]*rankAccumulator{}
	customers := map[string]*rankAccumulator{}

	for _, o := range orders {
		if !isRecognized(o.Status()) {
			continue
		}

		units := 0
		for _, item := range o.Items() {
			units += item.Quantity()
			p, ok := products[item.ProductID()]
			if !ok {
				p = &rankAccumulator{id: item.ProductID(), name: item.Name(), revenue: decimal.Zero}
				products[item.ProductID()] = p
			}
			p.units += item.Quantity()
			p.revenue = p.revenue.Add(item.Subtotal().Amount())
		}

		retailerID := o.RetailerID()
		if retailerID == nil {
			continue
		}
		key := retailerID.String()
		c, ok := customers[key]
		if !ok {
			c = &rankAccumulator{id: key, name: o.CustomerName(), revenue: decimal.Zero}
			customers[key] = c
		}
		if c.name == "" {
			c.name = o.CustomerName()
		}
		c.units += units
		c.revenue = c.revenue.Add(o.TotalAmount().Amount())
	}

	return a.top(products), a.top(customers)
}

func (a MetricsAggregator) top(entries map[string]*rankAccumulator) []metrics.RankedEntry {
	list := make([]*rankAccumulator, 0, len(entries))
	for _, e := range entries {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool {
		if cmp := list[i].revenue.Cmp(list[j].revenue); cmp != 0 {
			return cmp > 0
		}
		return list[i].id < list[j].id
	})
	if len(list) > a.topN {
		list = list[:a.topN]
	}

	out := make([]metrics.RankedEntry, len(list))
	for i, e := range list {
		out[i] = metrics.RankedEntry{
			ID:        e.id,
			Name:      e.name,
			UnitsSold: e.units,
			Revenue:   toMoney(e.revenue),
		}
	}
	return out
}

func toMoney(amount decimal.Decimal) kernel.Money {
	m, err := kernel.NewMoney(amount)
	if err != nil {
		return kernel.Zero()
	}
	return m
}
