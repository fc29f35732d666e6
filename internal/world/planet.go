package world

import (
	"fmt"
	"math"
	"strings"
	"time"

	"prunkit/internal/quantity"
)

// Environment class thresholds. Outside the band is low/high; inside normal.
const (
	TempLow  = -25.0 // °C
	TempHigh = 75.0
	PresLow  = 0.25 // atm
	PresHigh = 2.0
	GravLow  = 0.25 // g
	GravHigh = 2.5
)

// EnvClass is one of low, normal, high.
type EnvClass string

const (
	Low    EnvClass = "low"
	Normal EnvClass = "normal"
	High   EnvClass = "high"
)

func classify(v, low, high float64) EnvClass {
	switch {
	case v < low:
		return Low
	case v > high:
		return High
	default:
		return Normal
	}
}

// COGCPeriod is one declared program window.
type COGCPeriod struct {
	Program string
	Start   time.Time
	End     time.Time
}

// Planet is one colonizable body with its environment, declared COGC
// programs and resource deposits. Immutable once loaded.
type Planet struct {
	NaturalID string // e.g. XG-326a
	Name      string
	SystemID  string

	Temperature float64
	Pressure    float64
	Gravity     float64
	Fertility   float64
	Surface     bool

	Programs  []COGCPeriod
	Resources []Resource
}

// TemperatureClass classifies the planet's temperature band.
func (p *Planet) TemperatureClass() EnvClass { return classify(p.Temperature, TempLow, TempHigh) }

// PressureClass classifies the planet's pressure band.
func (p *Planet) PressureClass() EnvClass { return classify(p.Pressure, PresLow, PresHigh) }

// GravityClass classifies the planet's gravity band.
func (p *Planet) GravityClass() EnvClass { return classify(p.Gravity, GravLow, GravHigh) }

// Fertile reports whether agriculture works at all here.
func (p *Planet) Fertile() bool { return p.Fertility > -1 }

// ActiveProgram returns the COGC program whose period covers now, with the
// ADVERTISING_/WORKFORCE_ prefix stripped. Any period containing now counts
// as active.
func (p *Planet) ActiveProgram(now time.Time) (string, bool) {
	for _, period := range p.Programs {
		if !now.Before(period.Start) && now.Before(period.End) {
			prog := strings.TrimPrefix(period.Program, "ADVERTISING_")
			prog = strings.TrimPrefix(prog, "WORKFORCE_")
			return prog, true
		}
	}
	return "", false
}

// Resource returns the deposit for a ticker, if one exists.
func (p *Planet) Resource(ticker string) (Resource, bool) {
	for _, r := range p.Resources {
		if r.Ticker == ticker {
			return r, true
		}
	}
	return Resource{}, false
}

// EnvironmentCost returns the extra construction materials a building of
// the given area needs on this planet.
func (p *Planet) EnvironmentCost(area float64) quantity.ResourceBag {
	bag := quantity.ResourceBag{}
	switch p.TemperatureClass() {
	case Low:
		bag["INS"] = 10 * area
	case High:
		bag["TSH"] = 1
	}
	switch p.PressureClass() {
	case Low:
		bag["SEA"] = area
	case High:
		bag["HSE"] = 1
	}
	switch p.GravityClass() {
	case Low:
		bag["MGC"] = 1
	case High:
		bag["BL"] = 1
	}
	if p.Surface {
		bag["MCG"] = 4 * area
	} else {
		bag["AEF"] = math.Ceil(area / 3)
	}
	return bag
}

// FactorRange is the min/max abundance observed for one material across all
// planets; used to score a deposit against the galaxy.
type FactorRange struct {
	Min float64
	Max float64
}

// Relative places a factor within the range, 0 at Min and 1 at Max.
func (fr FactorRange) Relative(factor float64) float64 {
	if fr.Max <= fr.Min {
		return 1
	}
	return (factor - fr.Min) / (fr.Max - fr.Min)
}

// ResourceKind is the deposit type, which uniquely determines the extractor.
type ResourceKind string

const (
	Gaseous ResourceKind = "GASEOUS"
	Liquid  ResourceKind = "LIQUID"
	Mineral ResourceKind = "MINERAL"
)

// Per-extractor constants: building ticker, yield multiplier, base cycle
// hours.
var extractors = map[ResourceKind]struct {
	Building   string
	Multiplier float64
	CycleHours float64
}{
	Gaseous: {"COL", 0.6, 6},
	Liquid:  {"RIG", 0.7, 4.8},
	Mineral: {"EXT", 0.7, 12},
}

// Resource is one planetary deposit together with its derived extraction
// parameters.
type Resource struct {
	Ticker        string
	Kind          ResourceKind
	Factor        float64
	Extractor     string  // COL, RIG or EXT
	DailyYield    float64 // units per day at factor
	ProcessHours  float64 // one extraction cycle
	ProcessAmount float64 // integral units per cycle
}

// NewResource derives the extraction parameters for a deposit. The cycle is
// stretched when needed so its output is integral while preserving the
// daily yield.
func NewResource(ticker string, kind ResourceKind, factor float64) (Resource, error) {
	ext, ok := extractors[kind]
	if !ok {
		return Resource{}, fmt.Errorf("unknown resource type %q", kind)
	}
	daily := factor * 100 * ext.Multiplier
	r := Resource{
		Ticker:     ticker,
		Kind:       kind,
		Factor:     factor,
		Extractor:  ext.Building,
		DailyYield: daily,
	}
	cyclesPerDay := 24 / ext.CycleHours
	raw := daily / cyclesPerDay
	if raw == math.Trunc(raw) {
		r.ProcessAmount = raw
		r.ProcessHours = ext.CycleHours
	} else {
		r.ProcessAmount = math.Ceil(raw)
		r.ProcessHours = ext.CycleHours * (r.ProcessAmount / raw)
	}
	return r, nil
}
