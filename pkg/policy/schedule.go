package policy

import (
	"fmt"
	"slices"
	"strconv"

	"liyu1981.xyz/minute-policy-service/pkg/models"
)

const MinutesPerDay = 24 * 60

// ParseClock reads a strict "HH:MM" in 00:00..23:59 into minutes since
// midnight.
func ParseClock(clock string) (int, error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, invalidf("time %q is not HH:MM", clock)
	}
	hours, errH := strconv.Atoi(clock[:2])
	minutes, errM := strconv.Atoi(clock[3:])
	if errH != nil || errM != nil || clock[0] == '+' || clock[0] == '-' || clock[3] == '+' || clock[3] == '-' {
		return 0, invalidf("time %q is not HH:MM", clock)
	}
	if hours > 23 || minutes > 59 {
		return 0, invalidf("time %q is out of range", clock)
	}
	return hours*60 + minutes, nil
}

func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func PercentOfDay(minutes int) float64 {
	return float64(minutes) / MinutesPerDay * 100
}

type Segment struct {
	StartPercent float64 `json:"start_percent"`
	WidthPercent float64 `json:"width_percent"`
}

type Placement struct {
	StartMinute  int       `json:"start_minute"`
	EndMinute    int       `json:"end_minute"`
	StartPercent float64   `json:"start_percent"`
	WidthPercent float64   `json:"width_percent"`
	Overnight    bool      `json:"overnight"`
	Segments     []Segment `json:"segments"`
}

func ValidBlockType(t models.BlockType) bool {
	switch t {
	case models.BlockTypeSchool, models.BlockTypeBedtime, models.BlockTypeDowntime, models.BlockTypeFree:
		return true
	}
	return false
}

// PlaceBlock positions a block on the 24 hour axis. A block whose end is
// before its start runs past midnight and is drawn as two segments.
func PlaceBlock(block models.TimeBlock) (Placement, error) {
	if !ValidBlockType(block.Type) {
		return Placement{}, invalidf("unknown block type %q", block.Type)
	}
	start, err := ParseClock(block.Start)
	if err != nil {
		return Placement{}, err
	}
	end, err := ParseClock(block.End)
	if err != nil {
		return Placement{}, err
	}
	if start == end {
		return Placement{}, invalidf("block %q starts and ends at %s", block.Label, block.Start)
	}

	p := Placement{
		StartMinute:  start,
		EndMinute:    end,
		StartPercent: PercentOfDay(start),
	}

	if end > start {
		p.WidthPercent = PercentOfDay(end - start)
		p.Segments = []Segment{{StartPercent: p.StartPercent, WidthPercent: p.WidthPercent}}
		return p, nil
	}

	p.Overnight = true
	p.WidthPercent = PercentOfDay(MinutesPerDay - start + end)
	p.Segments = []Segment{{StartPercent: p.StartPercent, WidthPercent: PercentOfDay(MinutesPerDay - start)}}
	if end > 0 {
		p.Segments = append(p.Segments, Segment{StartPercent: 0, WidthPercent: PercentOfDay(end)})
	}
	return p, nil
}

// intervals unrolls a placement into half-open [from, to) minute ranges on a
// single day.
func (p Placement) intervals() [][2]int {
	if !p.Overnight {
		return [][2]int{{p.StartMinute, p.EndMinute}}
	}
	out := [][2]int{{p.StartMinute, MinutesPerDay}}
	if p.EndMinute > 0 {
		out = append(out, [2]int{0, p.EndMinute})
	}
	return out
}

func (p Placement) Covers(minute int) bool {
	for _, iv := range p.intervals() {
		if minute >= iv[0] && minute < iv[1] {
			return true
		}
	}
	return false
}

// OrderBlocks returns a copy sorted by start time. Invalid start times sort
// last so the caller's validation reports them.
func OrderBlocks(blocks []models.TimeBlock) []models.TimeBlock {
	ordered := slices.Clone(blocks)
	slices.SortStableFunc(ordered, func(a, b models.TimeBlock) int {
		sa, errA := ParseClock(a.Start)
		sb, errB := ParseClock(b.Start)
		if errA != nil {
			sa = MinutesPerDay
		}
		if errB != nil {
			sb = MinutesPerDay
		}
		return sa - sb
	})
	return ordered
}

// ValidateDay checks every block and rejects any two blocks sharing a minute.
func ValidateDay(blocks []models.TimeBlock) error {
	placements := make([]Placement, len(blocks))
	for i, b := range blocks {
		p, err := PlaceBlock(b)
		if err != nil {
			return err
		}
		placements[i] = p
	}

	for i := range placements {
		for j := i + 1; j < len(placements); j++ {
			for _, a := range placements[i].intervals() {
				for _, b := range placements[j].intervals() {
					if a[0] < b[1] && b[0] < a[1] {
						return invalidf("block %q overlaps block %q", blocks[i].Label, blocks[j].Label)
					}
				}
			}
		}
	}
	return nil
}

type PlacedBlock struct {
	models.TimeBlock
	Placement
}

type PlacedDay struct {
	Day    string        `json:"day"`
	Blocks []PlacedBlock `json:"blocks"`
}

func PlaceDay(day models.DaySchedule) (PlacedDay, error) {
	placed := PlacedDay{Day: day.Day, Blocks: make([]PlacedBlock, 0, len(day.Blocks))}
	for _, b := range OrderBlocks(day.Blocks) {
		p, err := PlaceBlock(b)
		if err != nil {
			return PlacedDay{}, err
		}
		placed.Blocks = append(placed.Blocks, PlacedBlock{TimeBlock: b, Placement: p})
	}
	return placed, nil
}

// BlockAt finds the block covering minute. Minutes not covered by any block
// are free time.
func BlockAt(day models.DaySchedule, minute int) (models.TimeBlock, bool, error) {
	if minute < 0 || minute >= MinutesPerDay {
		return models.TimeBlock{}, false, invalidf("minute %d is outside the day", minute)
	}
	for _, b := range day.Blocks {
		p, err := PlaceBlock(b)
		if err != nil {
			return models.TimeBlock{}, false, err
		}
		if p.Covers(minute) {
			return b, true, nil
		}
	}
	return models.TimeBlock{}, false, nil
}

func TypeAt(day models.DaySchedule, minute int) (models.BlockType, error) {
	b, ok, err := BlockAt(day, minute)
	if err != nil {
		return "", err
	}
	if !ok {
		return models.BlockTypeFree, nil
	}
	return b.Type, nil
}

type UpcomingBlock struct {
	Block    models.TimeBlock `json:"block"`
	StartsIn int              `json:"starts_in"`
}

// NextRestriction finds the next non-free block starting after minute,
// looking at most one day ahead.
func NextRestriction(day models.DaySchedule, minute int) (*UpcomingBlock, error) {
	if minute < 0 || minute >= MinutesPerDay {
		return nil, invalidf("minute %d is outside the day", minute)
	}

	var next *UpcomingBlock
	for _, b := range day.Blocks {
		if b.Type == models.BlockTypeFree {
			continue
		}
		start, err := ParseClock(b.Start)
		if err != nil {
			return nil, err
		}
		startsIn := (start - minute + MinutesPerDay) % MinutesPerDay
		if startsIn == 0 {
			// already started, the next occurrence is tomorrow
			startsIn = MinutesPerDay
		}
		if next == nil || startsIn < next.StartsIn {
			next = &UpcomingBlock{Block: b, StartsIn: startsIn}
		}
	}
	return next, nil
}
