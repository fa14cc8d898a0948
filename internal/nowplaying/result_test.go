package nowplaying

import (
	"encoding/json"
	"testing"

	"github.com/mielsense/nowplaying/pkg/lastfm"
)

func TestResult_MarshalJSON(t *testing.T) {
	track := &lastfm.RecentTrack{
		Name: "X",
		Raw:  json.RawMessage(`{"name":"X","@attr":{"nowplaying":"true"}}`),
	}

	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"playing", Result{Track: track}, `{"track":{"name":"X","@attr":{"nowplaying":"true"}}}`},
		{"not playing", Result{}, `{"track":null}`},
		{"empty", Result{Empty: true}, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.result)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResult_Key(t *testing.T) {
	a := Result{Track: &lastfm.RecentTrack{Artist: "A", Album: "B", Name: "C"}}
	b := Result{Track: &lastfm.RecentTrack{Artist: "A", Album: "B", Name: "D"}}

	if a.Key() == b.Key() {
		t.Error("expected different tracks to have different keys")
	}
	if (Result{}).Key() != "" || (Result{Empty: true}).Key() != "" {
		t.Error("expected empty key when nothing is playing")
	}
	if !a.Playing() || (Result{Empty: true}).Playing() {
		t.Error("unexpected Playing value")
	}
}
