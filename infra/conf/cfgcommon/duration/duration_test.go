package duration_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/xtls/xrelay/infra/conf/cfgcommon/duration"
)

type testWithDuration struct {
	Duration duration.Duration
}

func TestDurationJSON(t *testing.T) {
	expected := &testWithDuration{
		Duration: duration.Duration(time.Hour),
	}
	data, err := json.Marshal(expected)
	if err != nil {
		t.Error(err)
		return
	}
	actual := &testWithDuration{}
	err = json.Unmarshal(data, &actual)
	if err != nil {
		t.Error(err)
		return
	}
	if actual.Duration != expected.Duration {
		t.Errorf("expected: %s, actual: %s", time.Duration(expected.Duration), time.Duration(actual.Duration))
	}
}

func TestDurationSeconds(t *testing.T) {
	actual := &testWithDuration{}
	if err := json.Unmarshal([]byte(`{"Duration": 1.5}`), actual); err != nil {
		t.Fatal(err)
	}
	if actual.Duration.Build() != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, actual: %s", actual.Duration.Build())
	}

	if err := json.Unmarshal([]byte(`{"Duration": true}`), actual); err == nil {
		t.Error("expected error for boolean duration")
	}
}
