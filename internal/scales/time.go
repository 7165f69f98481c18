package scales

import (
	"math"
	"sort"
	"time"
)

// Time maps a time domain onto a numeric range.
type Time struct {
	t0, t1 time.Time
	r0, r1 float64
}

// NewTime creates a time scale.
func NewTime(domain [2]time.Time, rng [2]float64) Time {
	return Time{t0: domain[0], t1: domain[1], r0: rng[0], r1: rng[1]}
}

// Scale maps t onto the range.
func (s Time) Scale(t time.Time) float64 {
	return interpolate(s.r0, s.r1, normalize(ms(s.t0), ms(s.t1), ms(t)))
}

// Invert maps a range value back to a timestamp in the domain's location.
func (s Time) Invert(r float64) time.Time {
	v := interpolate(ms(s.t0), ms(s.t1), normalize(s.r0, s.r1, r))
	return time.UnixMilli(int64(math.Round(v))).In(s.t0.Location())
}

func (s Time) Domain() [2]time.Time { return [2]time.Time{s.t0, s.t1} }
func (s Time) Range() [2]float64    { return [2]float64{s.r0, s.r1} }

// Nice extends the domain to round boundaries of the interval d3 would
// choose for about ten ticks.
func (s Time) Nice() Time {
	iv := chooseInterval(s.t0, s.t1, 10)
	out := s
	if s.t1.Before(s.t0) {
		out.t0, out.t1 = iv.ceil(s.t0), iv.floor(s.t1)
		return out
	}
	out.t0, out.t1 = iv.floor(s.t0), iv.ceil(s.t1)
	return out
}

// Tick is a time tick with its label.
type Tick struct {
	At    time.Time
	Label string
}

// Ticks returns roughly count ticks across the domain with d3's
// multi-scale labels.
func (s Time) Ticks(count int) []Tick {
	start, stop := s.t0, s.t1
	if stop.Before(start) {
		start, stop = stop, start
	}
	iv := chooseInterval(start, stop, count)

	var out []Tick
	for t := iv.ceil(start); !t.After(stop); t = iv.next(t) {
		out = append(out, Tick{At: t, Label: tickLabel(t)})
		if len(out) > 1000 {
			break
		}
	}
	return out
}

func ms(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e6
}

type unit int

const (
	unitMillisecond unit = iota
	unitSecond
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

const (
	durationSecond = 1e3
	durationMinute = durationSecond * 60
	durationHour   = durationMinute * 60
	durationDay    = durationHour * 24
	durationWeek   = durationDay * 7
	durationMonth  = durationDay * 30
	durationYear   = durationDay * 365
)

type interval struct {
	unit unit
	step int
}

var tickIntervals = []struct {
	interval
	duration float64
}{
	{interval{unitSecond, 1}, durationSecond},
	{interval{unitSecond, 5}, 5 * durationSecond},
	{interval{unitSecond, 15}, 15 * durationSecond},
	{interval{unitSecond, 30}, 30 * durationSecond},
	{interval{unitMinute, 1}, durationMinute},
	{interval{unitMinute, 5}, 5 * durationMinute},
	{interval{unitMinute, 15}, 15 * durationMinute},
	{interval{unitMinute, 30}, 30 * durationMinute},
	{interval{unitHour, 1}, durationHour},
	{interval{unitHour, 3}, 3 * durationHour},
	{interval{unitHour, 6}, 6 * durationHour},
	{interval{unitHour, 12}, 12 * durationHour},
	{interval{unitDay, 1}, durationDay},
	{interval{unitDay, 2}, 2 * durationDay},
	{interval{unitWeek, 1}, durationWeek},
	{interval{unitMonth, 1}, durationMonth},
	{interval{unitMonth, 3}, 3 * durationMonth},
	{interval{unitYear, 1}, durationYear},
}

func chooseInterval(start, stop time.Time, count int) interval {
	target := math.Abs(ms(stop)-ms(start)) / float64(count)
	i := sort.Search(len(tickIntervals), func(i int) bool {
		return tickIntervals[i].duration > target
	})

	switch {
	case i == len(tickIntervals):
		y0 := ms(start) / durationYear
		y1 := ms(stop) / durationYear
		step := int(math.Round(tickStep(y0, y1, count)))
		if step < 1 {
			step = 1
		}
		return interval{unitYear, step}
	case i == 0:
		step := int(tickStep(ms(start), ms(stop), count))
		if step < 1 {
			step = 1
		}
		return interval{unitMillisecond, step}
	}

	if target/tickIntervals[i-1].duration < tickIntervals[i].duration/target {
		return tickIntervals[i-1].interval
	}
	return tickIntervals[i].interval
}

// floor rounds t down to the nearest interval boundary in t's location.
func (iv interval) floor(t time.Time) time.Time {
	loc := t.Location()
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	step := iv.step

	switch iv.unit {
	case unitMillisecond:
		n := t.UnixMilli()
		n -= mod(n, int64(step))
		return time.UnixMilli(n).In(loc)
	case unitSecond:
		return time.Date(y, mo, d, h, mi, s-s%step, 0, loc)
	case unitMinute:
		return time.Date(y, mo, d, h, mi-mi%step, 0, 0, loc)
	case unitHour:
		return time.Date(y, mo, d, h-h%step, 0, 0, 0, loc)
	case unitDay:
		return time.Date(y, mo, d-(d-1)%step, 0, 0, 0, 0, loc)
	case unitWeek:
		return time.Date(y, mo, d-int(t.Weekday()), 0, 0, 0, 0, loc)
	case unitMonth:
		m := int(mo) - 1
		return time.Date(y, time.Month(m-m%step+1), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y-y%step, time.January, 1, 0, 0, 0, 0, loc)
	}
}

// advance moves t forward by one base unit, without snapping.
func (iv interval) advance(t time.Time) time.Time {
	switch iv.unit {
	case unitMillisecond:
		return t.Add(time.Duration(iv.step) * time.Millisecond)
	case unitSecond:
		return t.Add(time.Second)
	case unitMinute:
		return t.Add(time.Minute)
	case unitHour:
		return t.Add(time.Hour)
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}

// next returns the first boundary strictly after the boundary t.
func (iv interval) next(t time.Time) time.Time {
	c := iv.advance(t)
	for i := 0; i < 400 && !iv.floor(c).Equal(c); i++ {
		c = iv.advance(c)
	}
	return iv.floor(c)
}

// ceil rounds t up to the nearest interval boundary.
func (iv interval) ceil(t time.Time) time.Time {
	f := iv.floor(t)
	if f.Equal(t) {
		return t
	}
	return iv.next(f)
}

func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// tickLabel picks the coarsest format that still distinguishes t,
// mirroring d3's default time tick format.
func tickLabel(t time.Time) string {
	second := interval{unitSecond, 1}
	minute := interval{unitMinute, 1}
	hour := interval{unitHour, 1}
	day := interval{unitDay, 1}
	week := interval{unitWeek, 1}
	month := interval{unitMonth, 1}
	year := interval{unitYear, 1}

	switch {
	case second.floor(t).Before(t):
		return t.Format(".000")
	case minute.floor(t).Before(t):
		return t.Format(":05")
	case hour.floor(t).Before(t):
		return t.Format("03:04")
	case day.floor(t).Before(t):
		return t.Format("03 PM")
	case month.floor(t).Before(t):
		if week.floor(t).Before(t) {
			return t.Format("Mon 02")
		}
		return t.Format("Jan 02")
	case year.floor(t).Before(t):
		return t.Format("January")
	default:
		return t.Format("2006")
	}
}
