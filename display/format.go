// Package display turns fixed-point treatment values into the strings shown
// on the watch. The output must match the device firmware byte for byte, so
// everything here is integer arithmetic with truncating division.
package display

import (
	"fmt"

	"github.com/rustyeddy/dialysis/treatment"
)

func abs(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}

// Weight formats an x10 value as "75.3". The sign lives on the whole part
// only, so values in (-1.0, 0) print without a minus.
func Weight(v int32) string {
	return fmt.Sprintf("%d.%d", v/10, abs(v%10))
}

// Time formats minutes as "H:MM".
func Time(minutes treatment.Minutes) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// UFR formats an x100 rate as "0.75".
func UFR(v int32) string {
	return fmt.Sprintf("%d.%02d", v/100, abs(v%100))
}

// Percentage formats an x10 percentage as "100.0%".
func Percentage(v int32) string {
	return fmt.Sprintf("%d.%d%%", v/10, abs(v%10))
}

func Delta(sel treatment.Delta) string {
	if sel == treatment.Delta02 {
		return "0.2"
	}
	return "0.4"
}

// Variance formats an x10 difference with a leading '+' when non-negative.
func Variance(v int32) string {
	if v >= 0 {
		return fmt.Sprintf("+%d.%d", v/10, abs(v%10))
	}
	return fmt.Sprintf("%d.%d", v/10, abs(v%10))
}

// PreRows renders the pre-treatment result block.
func PreRows(m treatment.Metrics) []string {
	return []string{
		"Goal: " + Weight(m.KGoal) + " kg",
		"Opt:  " + Weight(m.Optimistic) + " kg",
		"Pess: " + Weight(m.Pessimistic) + " kg",
		"UFR:  " + UFR(m.UFR) + " kg/h",
	}
}

// PostRows renders the post-treatment result block.
func PostRows(m treatment.Metrics) []string {
	return []string{
		fmt.Sprintf("Removed: %s kg", Weight(m.ActualRemoval)),
		fmt.Sprintf("Goal:    %s kg", Weight(m.KGoal)),
		fmt.Sprintf("Diff:    %s kg", Variance(m.Variance)),
		fmt.Sprintf("Achieved: %s", Percentage(m.Percentage)),
	}
}
