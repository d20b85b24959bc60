package ui

import (
	"fmt"

	"toroca/internal/core"
)

func runState(paused bool, tps int) string {
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf("%s @ %d gen/s", state, tps)
}

// Lines returns the multi-line status text the GUI overlay shows for sim.
func Lines(sim core.Sim, paused bool, tps int) []string {
	var lines []string
	if p, ok := sim.(core.ParameterProvider); ok {
		lines = p.Parameters().Lines()
	} else {
		lines = []string{"Sim: " + sim.Name()}
	}
	return append(lines, runState(paused, tps))
}

// StatusLine returns the same information on one line.
func StatusLine(sim core.Sim, paused bool, tps int) string {
	if p, ok := sim.(core.ParameterProvider); ok {
		return p.Parameters().StatusLine() + " | " + runState(paused, tps)
	}
	return "sim=" + sim.Name() + " | " + runState(paused, tps)
}
