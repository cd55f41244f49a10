// Package analytics summarizes service spending.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pedromssoares/service-agenda-for-cars/internal/models"
)

type Period string

const (
	PeriodAll         Period = "all"
	PeriodMonth       Period = "month"
	PeriodThreeMonths Period = "3months"
	PeriodYear        Period = "year"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PeriodAll:
		return PeriodAll, nil
	case PeriodMonth, PeriodThreeMonths, PeriodYear:
		return p, nil
	default:
		return "", fmt.Errorf("invalid period %q (expected all, month, 3months or year)", s)
	}
}

// Start is the earliest included date, zero for PeriodAll.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodThreeMonths:
		return now.AddDate(0, -3, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

type TypeCost struct {
	Name    string
	Total   float64
	Count   int
	Average float64
}

type MonthCost struct {
	Month time.Time // first day of the month
	Total float64
}

type Report struct {
	Period  Period
	Count   int
	Total   float64
	Average float64
	StdDev  float64 // sample standard deviation, zero below two events
	ByType  []TypeCost
	ByMonth []MonthCost
}

// Filter narrows the events a report covers.
type Filter struct {
	Period    Period
	VehicleID string
}

// CostReport aggregates events with a positive cost. Type names missing from
// types are reported as "Unknown". Months are bucketed in loc.
func CostReport(events []models.ServiceEvent, types []models.ServiceTypeTemplate, f Filter, now time.Time, loc *time.Location) Report {
	if loc == nil {
		loc = time.Local
	}
	names := make(map[string]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}

	start := f.Period.Start(now)
	var costs []float64
	byType := map[string]*TypeCost{}
	byMonth := map[time.Time]float64{}

	for _, e := range events {
		if e.Cost == nil || *e.Cost <= 0 {
			continue
		}
		if f.VehicleID != "" && e.VehicleID != f.VehicleID {
			continue
		}
		if !start.IsZero() && e.Date.Before(start) {
			continue
		}
		cost := *e.Cost
		costs = append(costs, cost)

		name, ok := names[e.ServiceTypeID]
		if !ok {
			name = "Unknown"
		}
		tc := byType[name]
		if tc == nil {
			tc = &TypeCost{Name: name}
			byType[name] = tc
		}
		tc.Total += cost
		tc.Count++

		d := e.Date.In(loc)
		byMonth[time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, loc)] += cost
	}

	period := f.Period
	if period == "" {
		period = PeriodAll
	}
	r := Report{Period: period, Count: len(costs)}
	if len(costs) == 0 {
		return r
	}
	for _, c := range costs {
		r.Total += c
	}
	r.Average = stat.Mean(costs, nil)
	if len(costs) > 1 {
		r.StdDev = stat.StdDev(costs, nil)
	}

	for _, tc := range byType {
		tc.Average = tc.Total / float64(tc.Count)
		r.ByType = append(r.ByType, *tc)
	}
	sort.Slice(r.ByType, func(i, j int) bool {
		if r.ByType[i].Total != r.ByType[j].Total {
			return r.ByType[i].Total > r.ByType[j].Total
		}
		return r.ByType[i].Name < r.ByType[j].Name
	})

	for m, total := range byMonth {
		r.ByMonth = append(r.ByMonth, MonthCost{Month: m, Total: total})
	}
	sort.Slice(r.ByMonth, func(i, j int) bool {
		return r.ByMonth[i].Month.Before(r.ByMonth[j].Month)
	})
	return r
}
