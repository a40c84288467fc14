package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/dialysis/display"
)

// FormatTreatmentOrg renders an Entry as an Org-mode block. Structured
// values go into the PROPERTIES drawer using the on-screen formats; the
// Notes section is left for the patient or nurse.
func FormatTreatmentOrg(e Entry) string {
	r := e.Record
	m := e.Metrics()

	started := r.Started().UTC()
	heading := fmt.Sprintf("** Treatment: %s", started.Format("2006-01-02 15:04"))
	if e.SessionID != "" {
		heading += fmt.Sprintf(" (%s)", shortID(e.SessionID))
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	if e.SessionID != "" {
		b.WriteString(fmt.Sprintf(":ID: %s\n", e.SessionID))
	}
	b.WriteString(fmt.Sprintf(":STARTED: %s\n", started.Format(time.RFC3339)))
	if !e.Completed.IsZero() {
		b.WriteString(fmt.Sprintf(":COMPLETED: %s\n", e.Completed.UTC().Format(time.RFC3339)))
	}
	b.WriteString(fmt.Sprintf(":PRE_WEIGHT: %s\n", display.Weight(r.PreWeight)))
	b.WriteString(fmt.Sprintf(":DRY_WEIGHT: %s\n", display.Weight(r.DryWeight)))
	b.WriteString(fmt.Sprintf(":POST_WEIGHT: %s\n", display.Weight(r.PostWeight)))
	b.WriteString(fmt.Sprintf(":TIME: %s\n", display.Time(r.TreatmentTime)))
	b.WriteString(fmt.Sprintf(":DELTA: %s\n", display.Delta(r.DeltaSelection)))
	b.WriteString(fmt.Sprintf(":UFR: %s\n", display.UFR(m.UFR)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Results\n")
	for _, row := range display.PostRows(m) {
		b.WriteString("- ")
		b.WriteString(row)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString("*** Notes\n- \n")

	return b.String()
}

// FormatTreatmentsOrg renders multiple entries separated by blank lines.
func FormatTreatmentsOrg(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTreatmentOrg(e))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
