// Package replay folds a bar series through a broker simulator and a policy
// engine, one bar at a time, in series order.
package replay

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"scalper-go/internal/broker"
	"scalper-go/internal/model"
	"scalper-go/internal/policy"
)

// ErrMalformedBar aborts a replay when a retained bar carries an undefined
// price field.
var ErrMalformedBar = errors.New("malformed bar in series")

// Variant pairs one policy engine with its own broker instance.
type Variant struct {
	Broker *broker.Sim
	Policy policy.Policy
}

// Run replays the series through a single variant. For each bar the broker
// resolves the previous trade's stop/target touches first, then the policy
// acts on the bar's signal. A still-open trade is liquidated at the final
// bar's close.
func Run(bars []model.Bar, signals []model.Signal, v Variant) error {
	if len(bars) != len(signals) {
		return fmt.Errorf("series length mismatch: %d bars, %d signals", len(bars), len(signals))
	}

	for i, bar := range bars {
		if !bar.Valid() {
			return fmt.Errorf("%w: index %d (%s)", ErrMalformedBar, i, bar.Datetime)
		}
		v.Broker.ProcessBar(i, bar)
		v.Policy.OnBar(bar, signals[i])
	}

	v.Broker.CloseAtEnd()
	log.Info().
		Str("strategy", v.Policy.Name()).
		Int("bars", len(bars)).
		Int("trades", len(v.Broker.ClosedTrades())).
		Int("rejections", v.Policy.Rejections()).
		Float64("final_equity", v.Broker.Equity()).
		Msg("Replay finished")
	return nil
}

// RunAll replays the same series through every variant concurrently. Each
// variant owns its broker, so the runs share nothing but the read-only series.
func RunAll(bars []model.Bar, signals []model.Signal, variants []Variant) error {
	var wg sync.WaitGroup
	errs := make([]error, len(variants))

	for i, v := range variants {
		wg.Add(1)
		go func(i int, v Variant) {
			defer wg.Done()
			errs[i] = Run(bars, signals, v)
		}(i, v)
	}
	wg.Wait()

	return errors.Join(errs...)
}
