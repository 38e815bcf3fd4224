package inspection

import (
	"fmt"
	"math"
	"time"

	"glyco/defs"
)

// Direction selects which side of the threshold qualifies a sample.
type Direction int

const (
	Below Direction = iota
	Above
)

// Standard events need 15 sustained minutes to open and to close; the
// extended hypoglycemia variant needs 120 minutes to open.
const (
	DefaultEventMinutes  = 15
	ExtendedEntryMinutes = 120
)

// EventParams parameterizes one detection run.
type EventParams struct {
	Threshold    float64
	EntryMinutes float64
	ExitMinutes  float64
}

// Episode is a confirmed sustained excursion beyond a threshold.
type Episode struct {
	Start    time.Time `yaml:"timeStart"`
	End      time.Time `yaml:"timeEnd"`
	Duration float64   `yaml:"duration"` // minutes
}

// EventSummary is the outcome of one detection run. MeanDuration is NaN when
// there are no episodes. EventsPerWeek is NaN for an empty series but 0 when
// a non-empty series simply has no episodes; cohort aggregation relies on
// that asymmetry.
type EventSummary struct {
	Episodes      []Episode `yaml:"episodes"`
	MeanDuration  float64   `yaml:"meanDuration"`
	EventsPerWeek float64   `yaml:"eventsPerWeek"`
}

// LevelEvents groups a detection run with its severity split. L2 episodes
// are the runs beyond the severe threshold; L1 keeps the all-events episodes
// not claimed by an L2 episode.
type LevelEvents struct {
	All EventSummary `yaml:"all"`
	L1  EventSummary `yaml:"l1"`
	L2  EventSummary `yaml:"l2"`
}

// Detector states. The provisional run start and the exit countdown live in
// dedicated variables rather than one counter doing double duty.
const (
	stateIdle = iota
	statePending
	stateActive
)

// FindEpisodes scans the series left to right and emits every sustained
// excursion beyond the threshold. A sample qualifies when it is present and
// strictly beyond the threshold in the given direction; missing samples never
// qualify. An episode opens once entry-minutes worth of consecutive samples
// qualify, and closes once exit-minutes worth of consecutive samples do not;
// a qualifying sample during the closing countdown resumes the episode. The
// measured episode extends one sample period past its last qualifying sample.
// An episode still open when the series ends, whether confirmed at the very
// last sample or mid-countdown, is emitted with that same end rule; an
// unconfirmed run is dropped.
func FindEpisodes(s defs.Series, dir Direction, p EventParams) (EventSummary, error) {
	if p.EntryMinutes <= 0 || p.ExitMinutes <= 0 {
		return EventSummary{}, fmt.Errorf("entry and exit durations must be positive, got %v and %v", p.EntryMinutes, p.ExitMinutes)
	}

	if s.IsEmpty() || s.Len() < 2 {
		return newSummary(s, nil), nil
	}

	period := s.SampleMinutes()
	entrySamples := int(math.Round(p.EntryMinutes / period))
	if entrySamples < 1 {
		entrySamples = 1
	}
	exitSamples := int(math.Round(p.ExitMinutes / period))
	if exitSamples < 1 {
		exitSamples = 1
	}

	var (
		episodes []Episode
		state    = stateIdle
		runStart int // first sample of the qualifying run
		runLen   int
		lastQual int // last qualifying sample seen while active
		exitLeft int
	)

	emit := func() {
		start := s.Times[runStart]
		end := s.Times[lastQual].Add(time.Duration(period * float64(time.Minute)))
		episodes = append(episodes, Episode{Start: start, End: end, Duration: end.Sub(start).Minutes()})
	}

	for i, v := range s.Values {
		qual := !math.IsNaN(v) && (dir == Below && v < p.Threshold || dir == Above && v > p.Threshold)
		switch state {
		case stateIdle:
			if qual {
				runStart, runLen, lastQual = i, 1, i
				if runLen >= entrySamples {
					state, exitLeft = stateActive, exitSamples
				} else {
					state = statePending
				}
			}
		case statePending:
			if !qual {
				state = stateIdle
				continue
			}
			runLen++
			lastQual = i
			if runLen >= entrySamples {
				state, exitLeft = stateActive, exitSamples
			}
		case stateActive:
			if qual {
				lastQual = i
				exitLeft = exitSamples
				continue
			}
			exitLeft--
			if exitLeft == 0 {
				emit()
				state = stateIdle
			}
		}
	}
	if state == stateActive {
		emit()
	}

	return newSummary(s, episodes), nil
}

func newSummary(s defs.Series, episodes []Episode) EventSummary {
	sum := EventSummary{Episodes: episodes}
	if s.IsEmpty() {
		sum.MeanDuration = math.NaN()
		sum.EventsPerWeek = math.NaN()
		return sum
	}
	if len(episodes) == 0 {
		sum.MeanDuration = math.NaN()
		sum.EventsPerWeek = 0
		return sum
	}
	total := 0.0
	for _, e := range episodes {
		total += e.Duration
	}
	sum.MeanDuration = total / float64(len(episodes))
	if span := s.SpanDays(); span > 0 {
		sum.EventsPerWeek = float64(len(episodes)) / span * 7
	} else {
		sum.EventsPerWeek = math.NaN()
	}
	return sum
}

// FindHypoglycemicEvents detects sustained runs strictly below th.
func FindHypoglycemicEvents(s defs.Series, th float64) EventSummary {
	sum, _ := FindEpisodes(s, Below, EventParams{Threshold: th, EntryMinutes: DefaultEventMinutes, ExitMinutes: DefaultEventMinutes})
	return sum
}

// FindHyperglycemicEvents detects sustained runs strictly above th.
func FindHyperglycemicEvents(s defs.Series, th float64) EventSummary {
	sum, _ := FindEpisodes(s, Above, EventParams{Threshold: th, EntryMinutes: DefaultEventMinutes, ExitMinutes: DefaultEventMinutes})
	return sum
}

// FindExtendedHypoglycemicEvents detects prolonged runs strictly below th,
// requiring two sustained hours to confirm an episode start.
func FindExtendedHypoglycemicEvents(s defs.Series, th float64) EventSummary {
	sum, _ := FindEpisodes(s, Below, EventParams{Threshold: th, EntryMinutes: ExtendedEntryMinutes, ExitMinutes: DefaultEventMinutes})
	return sum
}

// FindHypoglycemicEventsByLevel splits hypoglycemic events into severity
// tiers using the profile's Low and SevereLow thresholds.
func FindHypoglycemicEventsByLevel(s defs.Series, p defs.Profile) LevelEvents {
	return splitLevels(s, FindHypoglycemicEvents(s, p.Low), FindHypoglycemicEvents(s, p.SevereLow))
}

// FindHyperglycemicEventsByLevel splits hyperglycemic events into severity
// tiers using the profile's High and SevereHigh thresholds.
func FindHyperglycemicEventsByLevel(s defs.Series, p defs.Profile) LevelEvents {
	return splitLevels(s, FindHyperglycemicEvents(s, p.High), FindHyperglycemicEvents(s, p.SevereHigh))
}

// splitLevels removes from the all-events list every episode claimed by a
// severe episode: for each L2 start, the all-events episode with the latest
// start not after it. What remains is level 1.
func splitLevels(s defs.Series, all, l2 EventSummary) LevelEvents {
	claimed := make(map[int]bool)
	for _, sev := range l2.Episodes {
		match := -1
		for i, e := range all.Episodes {
			if e.Start.After(sev.Start) {
				break
			}
			match = i
		}
		if match >= 0 {
			claimed[match] = true
		}
	}
	var l1 []Episode
	for i, e := range all.Episodes {
		if !claimed[i] {
			l1 = append(l1, e)
		}
	}
	return LevelEvents{All: all, L1: newSummary(s, l1), L2: l2}
}
