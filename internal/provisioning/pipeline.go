package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes all provisioning phases sequentially. The first failure
// stops the run; every attempted phase is timed into the state.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(phases))

	for i, phase := range phases {
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))
		if err := RunPhase(ctx, phase, name); err != nil {
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// RunPhase executes one phase, logging under label and recording its timing.
func RunPhase(ctx *Context, phase Phase, label string) error {
	phaseStart := time.Now()
	LogPhaseStart(ctx.Observer, label)

	err := phase.Provision(ctx)
	elapsed := time.Since(phaseStart)

	timing := PhaseTiming{Name: phase.Name(), Duration: elapsed}
	if err != nil {
		timing.Err = err.Error()
	}
	if ctx.State != nil {
		ctx.State.Timings = append(ctx.State.Timings, timing)
	}
	if ctx.Metrics != nil {
		ctx.Metrics.ObservePhase(phase.Name(), elapsed, err)
	}

	if err != nil {
		LogPhaseFailed(ctx.Observer, label, err)
		return err
	}
	LogPhaseComplete(ctx.Observer, label, elapsed)
	return nil
}
