package events

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGameStartedPayload_JSONShape(t *testing.T) {
	data, err := json.Marshal(GameStartedPayload{SectorsUnlocked: 6})
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"sectorsUnlocked", "players"} {
		if !strings.Contains(string(data), field) {
			t.Errorf("payload JSON missing %q: %s", field, data)
		}
	}
}
