package bot

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/domain"
	"github.com/pkg/errors"
)

// ParsePreset resolves a preset configuration string: a preset name,
// optionally followed by a colon and a comma-separated list of overrides.
//
//	"alphabeta"
//	"alphabeta:depth=6,prune=false,budget_ms=200"
//	"mcts:c=2,sims=5000"
//
// Recognised overrides: depth, prune, iterative, tactics, double_threat,
// weights, budget_ms, c and sims. Bool overrides without a value mean true.
func ParsePreset(config string) (Preset, error) {
	config = strings.TrimSpace(config)
	if config == "" {
		config = DefaultPreset
	}

	name := config
	rest := ""
	if split := strings.Index(config, ":"); split != -1 {
		name, rest = config[:split], config[split+1:]
	}
	preset, ok := LookupPreset(name)
	if !ok {
		return Preset{}, errors.Wrapf(domain.ErrUnknownPreset, "%q", name)
	}
	if rest == "" {
		return preset, nil
	}

	params := splitConfigString(rest)
	var err error
	if preset.MaxDepth, err = PopParamOr(params, "depth", preset.MaxDepth); err != nil {
		return Preset{}, err
	}
	if preset.Pruning, err = PopParamOr(params, "prune", preset.Pruning); err != nil {
		return Preset{}, err
	}
	if preset.Iterative, err = PopParamOr(params, "iterative", preset.Iterative); err != nil {
		return Preset{}, err
	}
	if preset.Tactics, err = PopParamOr(params, "tactics", preset.Tactics); err != nil {
		return Preset{}, err
	}
	if preset.DoubleThreat, err = PopParamOr(params, "double_threat", preset.DoubleThreat); err != nil {
		return Preset{}, err
	}
	if preset.Exploration, err = PopParamOr(params, "c", preset.Exploration); err != nil {
		return Preset{}, err
	}
	if preset.MaxSimulations, err = PopParamOr(params, "sims", preset.MaxSimulations); err != nil {
		return Preset{}, err
	}
	budgetMs, err := PopParamOr(params, "budget_ms", int(preset.Budget/time.Millisecond))
	if err != nil {
		return Preset{}, err
	}
	preset.Budget = time.Duration(budgetMs) * time.Millisecond

	if weights, found := params["weights"]; found {
		if _, ok := LookupWeights(weights); !ok {
			return Preset{}, errors.Errorf("unknown weights %q, valid values are %v", weights, WeightNames())
		}
		preset.Weights = weights
		delete(params, "weights")
	}

	if len(params) > 0 {
		unknown := make([]string, 0, len(params))
		for key := range params {
			unknown = append(unknown, key)
		}
		sort.Strings(unknown)
		return Preset{}, errors.Errorf("unknown parameters %v for preset %q", unknown, name)
	}
	if preset.MaxDepth < 0 || preset.MaxSimulations < 0 || preset.Budget < 0 {
		return Preset{}, errors.Errorf("negative override in %q", config)
	}
	if err := checkDepth(preset); err != nil {
		return Preset{}, err
	}
	return preset, nil
}

// checkDepth rejects an alpha-beta preset with neither a depth limit nor
// iterative deepening: it would search to the end of the game.
func checkDepth(p Preset) error {
	if p.Strategy == StrategyAlphaBeta && !p.Iterative && p.MaxDepth <= 0 {
		return errors.Errorf("preset %q: a fixed-depth search needs depth > 0", p.Name)
	}
	return nil
}

// splitConfigString splits "k1=v1,k2,k3=v3" into a map; keys without a value
// map to "".
func splitConfigString(config string) map[string]string {
	params := make(map[string]string)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		subParts := strings.SplitN(part, "=", 2)
		if len(subParts) == 1 {
			params[subParts[0]] = ""
		} else {
			params[subParts[0]] = subParts[1]
		}
	}
	return params
}

// GetParamOr parses params[key] as T, or returns defaultValue when the key is
// absent. For bool, a key without a value is true.
func GetParamOr[T interface{ bool | int | float64 }](params map[string]string, key string, defaultValue T) (T, error) {
	var t T
	toT := func(v any) T { return v.(T) }
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	switch any(defaultValue).(type) {
	case int:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		return toT(parsed), nil
	case float64:
		if value == "" {
			return defaultValue, nil
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		return toT(parsed), nil
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1":
			return toT(true), nil
		case "false", "0":
			return toT(false), nil
		}
		return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
	}
	return defaultValue, nil
}

// PopParamOr is GetParamOr that also removes key from params.
func PopParamOr[T interface{ bool | int | float64 }](params map[string]string, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}
