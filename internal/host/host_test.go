package host

import (
	"encoding/json"
	"testing"
)

func TestResolutionJSONPair(t *testing.T) {
	data, err := json.Marshal(Resolution{Width: 2048, Height: 1024})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[2048,1024]" {
		t.Fatalf("unexpected encoding: %s", data)
	}
	var back Resolution
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Width != 2048 || back.Height != 1024 {
		t.Fatalf("unexpected round trip: %+v", back)
	}
}

func TestResolutionRejectsWrongArity(t *testing.T) {
	var r Resolution
	if err := json.Unmarshal([]byte("[1,2,3]"), &r); err == nil {
		t.Fatal("expected arity error")
	}
}

func TestMaterialNamesKeepsOrder(t *testing.T) {
	doc := Document{Materials: []Material{{Name: "wood"}, {Name: "metal"}, {Name: "glass"}}}
	got := doc.MaterialNames()
	want := []string{"wood", "metal", "glass"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
}
