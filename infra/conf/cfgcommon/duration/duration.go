package duration

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a JSON duration written either as a Go duration string
// ("1m30s") or as a number of seconds.
type Duration int64

func (d *Duration) MarshalJSON() ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("nil pointer dereference")
	}
	dr := time.Duration(*d)
	return json.Marshal(dr.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	if d == nil {
		return fmt.Errorf("nil pointer dereference")
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case string:
		dr, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(dr)
		return nil
	case float64:
		*d = Duration(value * float64(time.Second))
		return nil
	default:
		return fmt.Errorf("invalid duration: %v", v)
	}
}

// Build returns the value as a time.Duration.
func (d Duration) Build() time.Duration {
	return time.Duration(d)
}
