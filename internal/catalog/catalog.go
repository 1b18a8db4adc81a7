package catalog

// Sector is one investable catalog entry. HiddenMult is server-only and must
// never be serialized to clients before session end.
type Sector struct {
	ID         int
	Name       string
	ROI        float64
	Beta       float64
	ESG        float64
	Locked     bool
	Desc       string
	HiddenMult float64
}

// PublicSector is the client-safe view of a Sector.
type PublicSector struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	ROI    float64 `json:"roi"`
	Beta   float64 `json:"beta"`
	ESG    float64 `json:"esg"`
	Locked bool    `json:"locked"`
	Desc   string  `json:"desc"`
}

// Tip is a pre-authored message the adversary can route to players.
// Truth is server-internal; player deliveries never include it.
type Tip struct {
	ID    int
	Text  string
	Truth bool
}

// Multiplier is the end-of-session reveal of a sector's hidden multiplier.
type Multiplier struct {
	ID   int     `json:"id"`
	Mult float64 `json:"mult"`
}

var sectors = []Sector{
	{ID: 0, Name: "Renewable Energy", ROI: 8, Beta: 0.9, ESG: 9, Locked: false, Desc: "Large-scale solar & wind", HiddenMult: 1.40},
	{ID: 1, Name: "Fossil Fuels", ROI: 12, Beta: 1.4, ESG: 2, Locked: false, Desc: "Coal & oil plants", HiddenMult: 0.80},
	{ID: 2, Name: "Electric Vehicles", ROI: 10, Beta: 1.2, ESG: 8, Locked: true, Desc: "EV manufacturing & infra", HiddenMult: 1.25},
	{ID: 3, Name: "Green Infrastructure", ROI: 6, Beta: 0.8, ESG: 7, Locked: false, Desc: "Public-private green projects", HiddenMult: 1.10},
	{ID: 4, Name: "Waste Management", ROI: 7, Beta: 0.7, ESG: 9, Locked: true, Desc: "Recycling & waste-to-energy", HiddenMult: 1.30},
	{ID: 5, Name: "Water Conservation", ROI: 9, Beta: 0.9, ESG: 8, Locked: true, Desc: "Water treatment & reuse", HiddenMult: 1.15},
	{ID: 6, Name: "Carbon Credits", ROI: 15, Beta: 1.5, ESG: 10, Locked: true, Desc: "Carbon trading instruments", HiddenMult: 1.50},
	{ID: 7, Name: "Green Buildings", ROI: 9, Beta: 1.1, ESG: 8, Locked: false, Desc: "Energy efficient constructions", HiddenMult: 1.20},
	{ID: 8, Name: "Sustainable Agriculture", ROI: 8, Beta: 1.0, ESG: 8, Locked: false, Desc: "Climate-smart farming", HiddenMult: 1.15},
	{ID: 9, Name: "Solar Manufacturing", ROI: 10, Beta: 1.3, ESG: 9, Locked: true, Desc: "Panel & cell manufacturing", HiddenMult: 1.35},
	{ID: 10, Name: "Hydrogen Energy", ROI: 18, Beta: 1.8, ESG: 9, Locked: true, Desc: "Early-stage hydrogen tech", HiddenMult: 1.60},
	{ID: 11, Name: "ESG Mutual Fund", ROI: 6, Beta: 0.7, ESG: 8, Locked: false, Desc: "Diversified ESG fund", HiddenMult: 1.10},
}

var tips = []Tip{
	{ID: 0, Text: "EV stocks are crashing — avoid them", Truth: false},
	{ID: 1, Text: "Carbon credits expected to surge", Truth: true},
	{ID: 2, Text: "Coal plants will have a sudden demand spike", Truth: false},
	{ID: 3, Text: "Solar manufacturing facing component shortage", Truth: true},
	{ID: 4, Text: "Water projects to get extra funding", Truth: true},
	{ID: 5, Text: "Green buildings under regulatory review", Truth: false},
}

// Size returns the number of sectors in the catalog.
func Size() int {
	return len(sectors)
}

// Get returns the sector with the given id, or nil if out of range.
func Get(id int) *Sector {
	if id < 0 || id >= len(sectors) {
		return nil
	}
	return &sectors[id]
}

// Public returns client-safe views of every sector, in id order.
func Public() []PublicSector {
	out := make([]PublicSector, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, PublicSector{
			ID:     s.ID,
			Name:   s.Name,
			ROI:    s.ROI,
			Beta:   s.Beta,
			ESG:    s.ESG,
			Locked: s.Locked,
			Desc:   s.Desc,
		})
	}
	return out
}

// DefaultUnlocked counts the sectors that start investable because their
// catalog lock flag is false.
func DefaultUnlocked() int {
	n := 0
	for _, s := range sectors {
		if !s.Locked {
			n++
		}
	}
	return n
}

// Investable reports whether sector sid may receive an allocation given the
// room's current unlock count. A sector without the catalog lock flag is
// always investable; the unlock counter only governs locked sectors.
func Investable(sid, unlocked int) bool {
	s := Get(sid)
	if s == nil {
		return false
	}
	return sid < unlocked || !s.Locked
}

// GetTip returns the tip with the given id, or nil if unknown.
func GetTip(id int) *Tip {
	if id < 0 || id >= len(tips) {
		return nil
	}
	return &tips[id]
}

// Multipliers returns the hidden multiplier of every sector, in id order.
// This is the only reveal path for HiddenMult.
func Multipliers() []Multiplier {
	out := make([]Multiplier, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, Multiplier{ID: s.ID, Mult: s.HiddenMult})
	}
	return out
}
