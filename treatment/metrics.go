package treatment

// Metrics are derived from a Record on every read and never stored.
// Weights are x10, UFR is x100 (kg/h), Percentage is x10.
type Metrics struct {
	KGoal       int32
	Optimistic  int32
	Pessimistic int32
	UFR         int32

	ActualRemoval int32
	Variance      int32
	Percentage    int32
}

// DeltaValue returns the tolerance in tenths of a kilogram: 2 or 4.
func DeltaValue(sel Delta) int32 {
	if sel == Delta02 {
		return 2
	}
	return 4
}

// ComputePre derives the goal, the tolerance band and the ultrafiltration
// rate. It is valid before a post weight exists.
func ComputePre(r Record) Metrics {
	var m Metrics

	k := int64(r.PreWeight) - int64(r.DryWeight)
	d := int64(DeltaValue(r.DeltaSelection))

	m.KGoal = int32(k)
	m.Optimistic = int32(k - d)
	m.Pessimistic = int32(k + d)

	// x10 kg over minutes -> x100 kg/h: k * 60 * 10 / t
	if r.TreatmentTime > 0 {
		m.UFR = int32(k * 600 / int64(r.TreatmentTime))
	}
	return m
}

// ComputePost extends ComputePre with the achieved removal.
func ComputePost(r Record) Metrics {
	m := ComputePre(r)

	actual := int64(r.PreWeight) - int64(r.PostWeight)
	m.ActualRemoval = int32(actual)
	m.Variance = int32(actual - int64(m.KGoal))

	if m.KGoal != 0 {
		m.Percentage = int32(actual * 1000 / int64(m.KGoal))
	}
	return m
}
