package main

import (
	"ccdriver/internal/observ"
	"ccdriver/internal/runner"
)

// recordStageTimings adds the runner's stage durations to the phase timer.
func recordStageTimings(timer *observ.Timer, timings runner.Timings) {
	if timings.Has(runner.StageAssemble) {
		timer.Record("assemble", timings.Duration(runner.StageAssemble), "")
	}
	if timings.Has(runner.StageLink) {
		timer.Record("link", timings.Duration(runner.StageLink), "")
	}
}
