// Package metrics holds the read-side values produced by the metrics aggregator.
// Snapshots are computed on every request and never persisted.
package metrics

import (
	"time"

	"sellerconsole/internal/core/domain/model/kernel"
)

// Granularity is the calendar unit used to bucket a window.
type Granularity string

const (
	Day   Granularity = "day"
	Month Granularity = "month"
)

// MonthBucketThresholdDays is the smallest window bucketed by month.
const MonthBucketThresholdDays = 180

// GranularityFor picks day buckets for week and month windows and month
// buckets for year windows.
func GranularityFor(windowDays int) Granularity {
	if windowDays >= MonthBucketThresholdDays {
		return Month
	}
	return Day
}

// Bucket is one calendar period of the current window.
type Bucket struct {
	Label      string       `json:"label"`
	Start      time.Time    `json:"start"`
	Revenue    kernel.Money `json:"revenue"`
	OrderCount int          `json:"orderCount"`
}

// RankedEntry is a product or customer in a top-N ranking.
type RankedEntry struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	UnitsSold int          `json:"unitsSold"`
	Revenue   kernel.Money `json:"revenue"`
}

// Snapshot summarizes a seller's orders over a trailing window.
//
// Revenue figures count recognized orders only; TotalOrders and bucket
// OrderCount count every order created in the window. GrowthPct is nil when
// the previous window had no revenue.
type Snapshot struct {
	SellerID              kernel.UUID   `json:"sellerId"`
	WindowDays            int           `json:"windowDays"`
	WindowStart           time.Time     `json:"windowStart"`
	WindowEnd             time.Time     `json:"windowEnd"`
	Granularity           Granularity   `json:"granularity"`
	TotalRevenue          kernel.Money  `json:"totalRevenue"`
	TotalOrders           int           `json:"totalOrders"`
	RecognizedOrders      int           `json:"recognizedOrders"`
	AverageOrderValue     kernel.Money  `json:"averageOrderValue"`
	PreviousWindowRevenue kernel.Money  `json:"previousWindowRevenue"`
	PreviousWindowOrders  int           `json:"previousWindowOrders"`
	GrowthPct             *float64      `json:"growthPct"`
	Buckets               []Bucket      `json:"buckets"`
	TopProducts           []RankedEntry `json:"topProducts"`
	TopCustomers          []RankedEntry `json:"topCustomers"`
}
