package heat

import (
	"fmt"
	"strings"
)

// Strategy selects how a step is executed. Every strategy applies the same
// stencil; they differ only in how the grid is handed to workers.
type Strategy uint8

const (
	// StrategyGlobal hands X×Y tiles to the worker pool; workers read
	// neighbours straight from the step snapshot.
	StrategyGlobal Strategy = iota
	// StrategyShared hands X×Y tiles to the worker pool; each worker first
	// stages its tile plus a one-cell halo into a pooled local buffer and
	// computes from that copy.
	StrategyShared
	// StrategyStrip splits the grid into Z full-width row bands, one per
	// worker, ignoring the tile size.
	StrategyStrip
	// StrategySerial runs the whole grid on a single worker.
	StrategySerial
)

// DefaultStrategy is used by Simulation.Step unless WithStrategy is given.
const DefaultStrategy = StrategyShared

// Strategies lists every defined Strategy in launcher order.
var Strategies = [...]Strategy{StrategyGlobal, StrategyShared, StrategyStrip, StrategySerial}

var strategyNames = [...]string{
	StrategyGlobal: "global",
	StrategyShared: "shared",
	StrategyStrip:  "strip",
	StrategySerial: "serial",
}

// Valid reports whether s is a defined strategy.
func (s Strategy) Valid() bool {
	return int(s) < len(strategyNames)
}

// String returns the lower-case strategy name.
func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}

	return strategyNames[s]
}

// ParseStrategy maps a name (case-insensitive) back to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return Strategy(i), nil
		}
	}

	return 0, fmt.Errorf("ParseStrategy(%q): %w", name, ErrUnknownStrategy)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("Strategy.MarshalText(%d): %w", uint8(s), ErrUnknownStrategy)
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v

	return nil
}
