package places

import "time"

// OperatingHours follows the weekly-period layout used by place catalogs:
// Day is 0 (Sunday) through 6, Time is "HHMM".
type OperatingHours struct {
	Periods     []HoursPeriod `json:"periods"`
	WeekdayText []string      `json:"weekday_text,omitempty"`
}

type HoursPeriod struct {
	Open  DayTime  `json:"open"`
	Close *DayTime `json:"close,omitempty"`
}

type DayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// AlwaysOpen reports the single open-ended period convention for 24/7 places.
func (h *OperatingHours) AlwaysOpen() bool {
	if h == nil || len(h.Periods) != 1 {
		return false
	}
	p := h.Periods[0]
	return p.Close == nil && p.Open.Day == 0 && (p.Open.Time == "0000" || p.Open.Time == "")
}

func (h *OperatingHours) OpenOn(day time.Weekday) bool {
	if h == nil {
		return true
	}
	if h.AlwaysOpen() {
		return true
	}
	for _, p := range h.Periods {
		if p.Open.Day == int(day) {
			return true
		}
	}
	return false
}
