package bot

import (
	"sort"
	"time"
)

// Strategy selects the decision procedure behind a preset.
type Strategy string

const (
	StrategyRandom    Strategy = "random"
	StrategyEasy      Strategy = "easy"
	StrategyMedium    Strategy = "medium"
	StrategyAlphaBeta Strategy = "alphabeta"
	StrategyMCTS      Strategy = "mcts"
)

// Preset is one named engine configuration. Tactics and DoubleThreat only
// apply to the search strategies; the policy strategies embed their own checks.
type Preset struct {
	Name           string        `json:"name"`
	Strategy       Strategy      `json:"strategy"`
	Tactics        bool          `json:"tactics"`
	DoubleThreat   bool          `json:"double_threat"`
	Weights        string        `json:"weights,omitempty"`
	MaxDepth       int           `json:"max_depth,omitempty"`
	Pruning        bool          `json:"pruning"`
	Iterative      bool          `json:"iterative"`
	Budget         time.Duration `json:"budget"`
	Exploration    float64       `json:"exploration,omitempty"`
	MaxSimulations int           `json:"max_simulations,omitempty"`
}

const DefaultPreset = "alphabeta"

var presets = map[string]Preset{
	"random": {
		Name:     "random",
		Strategy: StrategyRandom,
	},
	"easy": {
		Name:     "easy",
		Strategy: StrategyEasy,
	},
	"medium": {
		Name:     "medium",
		Strategy: StrategyMedium,
	},
	// fixed depth, no pre-search
	"minimax": {
		Name:     "minimax",
		Strategy: StrategyAlphaBeta,
		Weights:  "offensive",
		MaxDepth: 4,
		Pruning:  true,
		Budget:   10 * time.Second,
	},
	"hard": {
		Name:      "hard",
		Strategy:  StrategyAlphaBeta,
		Tactics:   true,
		Weights:   "defensive",
		Pruning:   true,
		Iterative: true,
		Budget:    2850 * time.Millisecond,
	},
	"alphabeta": {
		Name:         "alphabeta",
		Strategy:     StrategyAlphaBeta,
		Tactics:      true,
		DoubleThreat: true,
		Weights:      "classic",
		Pruning:      true,
		Iterative:    true,
		Budget:       time.Second,
	},
	"mcts": {
		Name:        "mcts",
		Strategy:    StrategyMCTS,
		Tactics:     true,
		Exploration: UCB_EXPLORATION,
		Budget:      950 * time.Millisecond,
	},
}

// LookupPreset returns the named preset without overrides.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Presets lists every registered preset ordered by name.
func Presets() []Preset {
	list := make([]Preset, 0, len(presets))
	for _, p := range presets {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
