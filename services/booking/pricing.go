package booking

import (
	"fleetrent/models"
)

// QuoteCost computes the billable amount for a range at the given daily rate:
// inclusive day count times rate, at full decimal precision. Pure function;
// rounding happens only when the amount is rendered.
func QuoteCost(r DateRange, dailyRate models.Money) models.Money {
	return dailyRate.MulInt(int64(r.DaysInclusive()))
}
