package errorrate

import (
	"encoding/json"
	"math"
	"strconv"
)

// Rate is an error rate that is either a finite ratio or undefined.
// WER is undefined when the reference is empty but the hypothesis is not.
// The zero value is a finite rate of 0.
type Rate struct {
	value     float64
	undefined bool
}

// Finite returns a defined rate.
func Finite(v float64) Rate { return Rate{value: v} }

// Undefined returns the rate of a non-empty hypothesis against an empty reference.
func Undefined() Rate { return Rate{undefined: true} }

// Value returns the rate and whether it is defined.
func (r Rate) Value() (float64, bool) { return r.value, !r.undefined }

// IsUndefined reports whether the rate has no finite value.
func (r Rate) IsUndefined() bool { return r.undefined }

// Float64 returns the rate as a float, with +Inf standing for an undefined rate.
func (r Rate) Float64() float64 {
	if r.undefined {
		return math.Inf(1)
	}
	return r.value
}

func (r Rate) String() string {
	if r.undefined {
		return "undefined"
	}
	return strconv.FormatFloat(r.value, 'f', -1, 64)
}

// MarshalJSON encodes an undefined rate as null.
func (r Rate) MarshalJSON() ([]byte, error) {
	if r.undefined {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes null as an undefined rate.
func (r *Rate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Finite(v)
	return nil
}
