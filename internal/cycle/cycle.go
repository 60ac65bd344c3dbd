// Package cycle derives the forecast cycle timestamps the launchers name their
// output after. A cycle is the current UTC wall clock minus a fixed lag,
// truncated to the hour. The lag accounts for upstream model output arriving
// behind real time.
package cycle

import "time"

const (
	dateLayout     = "20060102"
	hourLayout     = "15"
	dateTimeLayout = "2006010215"
)

// Cycle is a single forecast cycle, resolved to UTC hour granularity.
type Cycle struct {
	t time.Time
}

// At returns the cycle lagHours behind the given instant.
func At(now time.Time, lagHours int) Cycle {
	t := now.UTC().Add(-time.Duration(lagHours) * time.Hour).Truncate(time.Hour)
	return Cycle{t: t}
}

// Now returns the cycle lagHours behind the current wall clock.
func Now(lagHours int) Cycle {
	return At(time.Now(), lagHours)
}

// Date formats the cycle date as YYYYMMDD.
func (c Cycle) Date() string {
	return c.t.Format(dateLayout)
}

// Hour formats the cycle hour as HH.
func (c Cycle) Hour() string {
	return c.t.Format(hourLayout)
}

// DateTime formats the cycle as the compact YYYYMMDDHH string used in file
// and URL names.
func (c Cycle) DateTime() string {
	return c.t.Format(dateTimeLayout)
}

// Time returns the underlying UTC time of the cycle.
func (c Cycle) Time() time.Time {
	return c.t
}

func (c Cycle) String() string {
	return c.DateTime()
}
