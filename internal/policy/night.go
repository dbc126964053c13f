package policy

import "time"

// NightOverlap 计算 [start, end) 与夜间时段的重叠时长
// 夜间时段为每天 NightStartHour 到次日 NightEndHour，按策略时区计算
func (p Policy) NightOverlap(start, end time.Time) time.Duration {
	if !end.After(start) {
		return 0
	}

	loc := p.Location()
	start = start.In(loc)
	end = end.In(loc)

	// 从前一天开始，覆盖跨越午夜的夜间时段
	day := time.Date(start.Year(), start.Month(), start.Day()-1, 0, 0, 0, 0, loc)
	var total time.Duration
	for !day.After(end) {
		for _, w := range p.nightWindows(day) {
			total += overlap(start, end, w[0], w[1])
		}
		day = day.AddDate(0, 0, 1)
	}

	return total
}

// nightWindows 返回以 day 为起点的夜间时段
func (p Policy) nightWindows(day time.Time) [][2]time.Time {
	at := func(d time.Time, hour int) time.Time {
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
	}

	if p.NightStartHour == p.NightEndHour {
		return nil
	}
	if p.NightStartHour > p.NightEndHour {
		// 跨越午夜，例如 22:00 - 次日 05:00
		return [][2]time.Time{{at(day, p.NightStartHour), at(day.AddDate(0, 0, 1), p.NightEndHour)}}
	}
	// 同一天内，例如 00:00 - 06:00
	return [][2]time.Time{{at(day, p.NightStartHour), at(day, p.NightEndHour)}}
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	s := aStart
	if bStart.After(s) {
		s = bStart
	}
	e := aEnd
	if bEnd.Before(e) {
		e = bEnd
	}
	if !e.After(s) {
		return 0
	}
	return e.Sub(s)
}
