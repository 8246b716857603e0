package object

// Sequence is a standalone numeric generator object. Every option is a
// pointer so producers can distinguish "unset" from "explicitly set to
// zero" and emit only the options the user configured, per the fixed
// option order in the relational producer (START WITH, INCREMENT BY,
// MINVALUE, MAXVALUE, CACHE, CYCLE).
type Sequence struct {
	Name      string
	Start     *int64
	Increment *int64
	MinValue  *int64
	MaxValue  *int64
	Cache     *int64
	Cycle     *bool
}

// NewSequence builds a sequence with the conventional defaults: start
// at 1, increment by 1, minimum 1, cache 1, no cycling, maximum at the
// largest representable signed 64-bit value.
func NewSequence(name string) Sequence {
	one := int64(1)
	maxVal := int64(9223372036854775807)
	cycleOff := false
	return Sequence{
		Name:      name,
		Start:     &one,
		Increment: &one,
		MinValue:  &one,
		MaxValue:  &maxVal,
		Cache:     &one,
		Cycle:     &cycleOff,
	}
}

func ptr64(v int64) *int64 { return &v }
func ptrBool(v bool) *bool { return &v }

// WithStart overrides the START WITH value.
func (s Sequence) WithStart(v int64) Sequence { s.Start = ptr64(v); return s }

// WithIncrement overrides the INCREMENT BY value.
func (s Sequence) WithIncrement(v int64) Sequence { s.Increment = ptr64(v); return s }

// WithMinValue overrides the MINVALUE.
func (s Sequence) WithMinValue(v int64) Sequence { s.MinValue = ptr64(v); return s }

// WithMaxValue overrides the MAXVALUE.
func (s Sequence) WithMaxValue(v int64) Sequence { s.MaxValue = ptr64(v); return s }

// WithCache overrides the CACHE size.
func (s Sequence) WithCache(v int64) Sequence { s.Cache = ptr64(v); return s }

// WithCycle overrides CYCLE/NO CYCLE.
func (s Sequence) WithCycle(v bool) Sequence { s.Cycle = ptrBool(v); return s }
