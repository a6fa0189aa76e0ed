package notice

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
)

// Fixed calendar approximations shared with the eligibility threshold.
const (
	day   = time.Duration(constants.SecondsPerDay) * time.Second
	week  = 7 * day
	month = time.Duration(constants.SecondsPerMonth) * time.Second
	year  = time.Duration(constants.SecondsPerYear) * time.Second
)

// relTimeMagnitudes floors every duration to its largest whole unit. A month is
// always 30 days and a year 365 days, the same constants the threshold uses.
var relTimeMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "now", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * day, Format: "1 day %s", DivBy: 1},
	{D: week, Format: "%d days %s", DivBy: day},
	{D: 2 * week, Format: "1 week %s", DivBy: 1},
	{D: month, Format: "%d weeks %s", DivBy: week},
	{D: 2 * month, Format: "1 month %s", DivBy: 1},
	{D: year, Format: "%d months %s", DivBy: month},
	{D: 2 * year, Format: "1 year %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d years %s", DivBy: year},
}

// TimeAgo describes the distance between then and now in words, e.g.
// "2 years ago" or "3 days from now" when then lies in the future.
func TimeAgo(then, now time.Time) string {
	return humanize.CustomRelTime(then, now, "ago", "from now", relTimeMagnitudes)
}
