package treatment

import "time"

// Weight is a body weight in tenths of a kilogram (753 -> 75.3 kg).
type Weight = int32

// Minutes is a treatment duration.
type Minutes = int16

// Delta selects the tolerance applied around the removal goal.
type Delta int16

const (
	Delta02 Delta = 0 // 0.2 kg
	Delta04 Delta = 1 // 0.4 kg
)

func (d Delta) String() string {
	if d == Delta02 {
		return "0.2"
	}
	return "0.4"
}

// Domain limits enforced by every mutator.
const (
	MinWeight Weight = 300  // 30.0 kg
	MaxWeight Weight = 2000 // 200.0 kg

	MinTime  Minutes = 60  // 1 hour
	MaxTime  Minutes = 480 // 8 hours
	TimeStep Minutes = 15

	WeightStep Weight = 1 // 0.1 kg
)

// Defaults for a freshly started session.
const (
	DefaultPreWeight Weight  = 750
	DefaultDryWeight Weight  = 720
	DefaultTime      Minutes = 240
)

// Record is the persisted state of one treatment session.
type Record struct {
	PreWeight      Weight
	DryWeight      Weight
	PostWeight     Weight
	TreatmentTime  Minutes
	DeltaSelection Delta
	Timestamp      int64 // unix seconds, session start
	IsComplete     bool
}

// NewRecord returns a record with default values started at now.
func NewRecord(now time.Time) Record {
	var r Record
	r.Init(now)
	return r
}

// Init resets r to the defaults for a new session.
func (r *Record) Init(now time.Time) {
	r.PreWeight = DefaultPreWeight
	r.DryWeight = DefaultDryWeight
	r.PostWeight = DefaultDryWeight
	r.TreatmentTime = DefaultTime
	r.DeltaSelection = Delta02
	r.Timestamp = now.Unix()
	r.IsComplete = false
}

// Started returns the session start as a time.Time.
func (r Record) Started() time.Time {
	return time.Unix(r.Timestamp, 0)
}

func (r *Record) SetPreWeight(v int64)  { r.PreWeight = clampWeight(v) }
func (r *Record) SetDryWeight(v int64)  { r.DryWeight = clampWeight(v) }
func (r *Record) SetPostWeight(v int64) { r.PostWeight = clampWeight(v) }

func (r *Record) SetTime(v int64) { r.TreatmentTime = clampTime(v) }

// SetDelta stores sel, mapping anything other than Delta02 to Delta04.
func (r *Record) SetDelta(sel Delta) {
	if sel != Delta02 {
		sel = Delta04
	}
	r.DeltaSelection = sel
}

// AdjustPreWeight moves the pre weight by dir steps of 0.1 kg.
func (r *Record) AdjustPreWeight(dir int) {
	r.SetPreWeight(int64(r.PreWeight) + int64(dir)*int64(WeightStep))
}

func (r *Record) AdjustDryWeight(dir int) {
	r.SetDryWeight(int64(r.DryWeight) + int64(dir)*int64(WeightStep))
}

func (r *Record) AdjustPostWeight(dir int) {
	r.SetPostWeight(int64(r.PostWeight) + int64(dir)*int64(WeightStep))
}

// AdjustTime moves the treatment time by dir steps of 15 minutes.
func (r *Record) AdjustTime(dir int) {
	r.SetTime(int64(r.TreatmentTime) + int64(dir)*int64(TimeStep))
}

// ToggleDelta flips between 0.2 and 0.4 kg.
func (r *Record) ToggleDelta() {
	if r.DeltaSelection == Delta02 {
		r.DeltaSelection = Delta04
		return
	}
	r.DeltaSelection = Delta02
}

// Validate reports whether every field lies inside the clamped domain.
// Records decoded from storage are not clamped on load; callers use this
// to flag payloads that could not have been produced by the mutators.
func (r Record) Validate() bool {
	for _, w := range []Weight{r.PreWeight, r.DryWeight, r.PostWeight} {
		if w < MinWeight || w > MaxWeight {
			return false
		}
	}
	if r.TreatmentTime < MinTime || r.TreatmentTime > MaxTime {
		return false
	}
	return r.DeltaSelection == Delta02 || r.DeltaSelection == Delta04
}

func clampWeight(v int64) Weight {
	if v < int64(MinWeight) {
		return MinWeight
	}
	if v > int64(MaxWeight) {
		return MaxWeight
	}
	return Weight(v)
}

func clampTime(v int64) Minutes {
	if v < int64(MinTime) {
		return MinTime
	}
	if v > int64(MaxTime) {
		return MaxTime
	}
	return Minutes(v)
}
