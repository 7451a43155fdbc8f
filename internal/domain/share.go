package domain

import (
	"fmt"
	"time"
)

// ShareOption is how long a shared link stays valid.
type ShareOption string

const (
	ShareOneHour     ShareOption = "1h"
	ShareThreeDays   ShareOption = "3d"
	ShareSevenDays   ShareOption = "7d"
	ShareOneMonth    ShareOption = "1m"
	ShareThreeMonths ShareOption = "3m"
)

// ShareOptions lists the accepted options, shortest first.
var ShareOptions = []ShareOption{
	ShareOneHour,
	ShareThreeDays,
	ShareSevenDays,
	ShareOneMonth,
	ShareThreeMonths,
}

// ExpireAt returns the expiration for a share made at now. Days and months
// follow the calendar.
func (o ShareOption) ExpireAt(now time.Time) (time.Time, error) {
	switch o {
	case ShareOneHour:
		return now.Add(time.Hour), nil
	case ShareThreeDays:
		return now.AddDate(0, 0, 3), nil
	case ShareSevenDays:
		return now.AddDate(0, 0, 7), nil
	case ShareOneMonth:
		return now.AddDate(0, 1, 0), nil
	case ShareThreeMonths:
		return now.AddDate(0, 3, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidShareOption, string(o))
	}
}
