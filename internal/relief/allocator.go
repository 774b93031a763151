package relief

import (
	"sort"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// Split is a percentage breakdown across supply types. A well-formed
// split sums to 100.
type Split struct {
	Food     float64 `json:"food"`
	Water    float64 `json:"water"`
	Medicine float64 `json:"medicine"`
	Shelter  float64 `json:"shelter"`
}

func (s Split) sum() float64 {
	return s.Food + s.Water + s.Medicine + s.Shelter
}

func (s Split) mul(o Split) Split {
	return Split{
		Food:     s.Food * o.Food,
		Water:    s.Water * o.Water,
		Medicine: s.Medicine * o.Medicine,
		Shelter:  s.Shelter * o.Shelter,
	}
}

// baseSplits is the starting supply mix per disaster type. Floods weight
// water, earthquakes weight medicine.
var baseSplits = map[string]Split{
	"earthquake": {Food: 25, Water: 25, Medicine: 30, Shelter: 20},
	"flood":      {Food: 20, Water: 40, Medicine: 20, Shelter: 20},
	"hurricane":  {Food: 30, Water: 30, Medicine: 20, Shelter: 20},
	"wildfire":   {Food: 25, Water: 35, Medicine: 20, Shelter: 20},
	"tornado":    {Food: 30, Water: 25, Medicine: 25, Shelter: 20},
}

var defaultSplit = Split{Food: 30, Water: 30, Medicine: 20, Shelter: 20}

// severityMultipliers adjust the mix per event severity. Medium and
// unrecognized severities leave the base split unchanged.
var severityMultipliers = map[string]Split{
	"low":  {Food: 0.8, Water: 0.8, Medicine: 0.7, Shelter: 0.7},
	"high": {Food: 1.2, Water: 1.2, Medicine: 1.3, Shelter: 1.3},
}

// damageMultipliers adjust the mix per infrastructure damage level.
// Moderate and unrecognized levels leave the base split unchanged.
var damageMultipliers = map[string]Split{
	"none":   {Food: 0.7, Water: 0.7, Medicine: 0.6, Shelter: 0.6},
	"light":  {Food: 0.8, Water: 0.8, Medicine: 0.8, Shelter: 0.8},
	"severe": {Food: 1.3, Water: 1.3, Medicine: 1.4, Shelter: 1.4},
}

// EventAllocation is one event's share of an allocation round.
type EventAllocation struct {
	EventID       string   `json:"event_id"`
	DisasterType  string   `json:"disaster_type"`
	Location      string   `json:"location"`
	Severity      string   `json:"severity"`
	Priority      float64  `json:"priority"`
	PriorityRatio float64  `json:"priority_ratio"`
	Split         Split    `json:"split"`
	Quantities    Supplies `json:"quantities"`
}

// PriorityScorer ranks an event's urgency
type PriorityScorer interface {
	Score(ev models.Event) float64
}

// Allocator distributes available supplies across the highest-priority
// events of a batch.
type Allocator struct {
	scorer PriorityScorer
	topK   int
}

// NewAllocator creates an allocator that serves at most topK events per
// round.
func NewAllocator(topK int) *Allocator {
	return &Allocator{scorer: Scorer{}, topK: topK}
}

// Allocate scores every event, keeps the topK most urgent and divides the
// available supplies among them in proportion to priority. Each event's
// share is then split across supply types by its disaster profile. Events
// are keyed by their unique ID so same-type disasters in different places
// never collapse into one line.
func (a *Allocator) Allocate(events []models.Event, available Supplies) []EventAllocation {
	if len(events) == 0 {
		return []EventAllocation{}
	}

	type scored struct {
		event    models.Event
		priority float64
	}
	ranked := make([]scored, len(events))
	for i, ev := range events {
		ranked[i] = scored{event: ev, priority: a.scorer.Score(ev)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].priority > ranked[j].priority
	})

	if a.topK > 0 && len(ranked) > a.topK {
		ranked = ranked[:a.topK]
	}

	var total float64
	for _, r := range ranked {
		total += r.priority
	}

	allocations := make([]EventAllocation, 0, len(ranked))
	for _, r := range ranked {
		ratio := 1 / float64(len(ranked))
		if total > 0 {
			ratio = r.priority / total
		}

		split := splitFor(r.event)
		share := available.scale(ratio)

		allocations = append(allocations, EventAllocation{
			EventID:       r.event.ID,
			DisasterType:  r.event.DisasterType,
			Location:      r.event.Location,
			Severity:      r.event.Severity,
			Priority:      r.priority,
			PriorityRatio: ratio,
			Split:         split,
			Quantities: Supplies{
				Food:     share.Food * split.Food / 100,
				Water:    share.Water * split.Water / 100,
				Medicine: share.Medicine * split.Medicine / 100,
				Shelter:  share.Shelter * split.Shelter / 100,
			},
		})
	}
	return allocations
}

// splitFor derives the event's supply mix: base split for the disaster
// type, scaled by severity and damage multipliers, renormalized to sum
// to 100.
func splitFor(ev models.Event) Split {
	split, ok := baseSplits[ev.DisasterType]
	if !ok {
		split = defaultSplit
	}

	if mult, ok := severityMultipliers[ev.Severity]; ok {
		split = split.mul(mult)
	}
	if mult, ok := damageMultipliers[ev.InfrastructureDamage]; ok {
		split = split.mul(mult)
	}

	total := split.sum()
	if total == 0 {
		return defaultSplit
	}
	factor := 100 / total
	return Split{
		Food:     split.Food * factor,
		Water:    split.Water * factor,
		Medicine: split.Medicine * factor,
		Shelter:  split.Shelter * factor,
	}
}
