package registry

import "testing"

func TestPresetsRegistered(t *testing.T) {
	list := List()
	if len(list) != 16 {
		t.Fatalf("List() returned %d agents, expected 16", len(list))
	}
	if list[0].ID != "terminator" || list[15].ID != "balanced" {
		t.Errorf("List() order = %s..%s, expected terminator..balanced", list[0].ID, list[15].ID)
	}

	seen := make(map[string]bool)
	for _, p := range list {
		if seen[p.ID] {
			t.Errorf("duplicate agent %q", p.ID)
		}
		seen[p.ID] = true

		for name, v := range map[string]float64{"aggression": p.Aggression, "risk": p.RiskTolerance, "accuracy": p.Accuracy} {
			if v < 0 || v > 1 {
				t.Errorf("%s %s = %v, expected within [0, 1]", p.ID, name, v)
			}
		}
		switch p.PreferredRange {
		case RangeClose, RangeMedium, RangeFar:
		default:
			t.Errorf("%s has preferred range %q", p.ID, p.PreferredRange)
		}
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
		name    string
	}{
		{"sniper", false, "Sniper"},
		{"random-rick", false, "Random Rick"},
		{"nobody", true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			p, err := Get(tc.id)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Get(%q) error = %v, wantErr %v", tc.id, err, tc.wantErr)
			}
			if p.Name != tc.name {
				t.Errorf("Get(%q).Name = %q, expected %q", tc.id, p.Name, tc.name)
			}
			if Exists(tc.id) == tc.wantErr {
				t.Errorf("Exists(%q) = %v, expected %v", tc.id, !tc.wantErr, tc.wantErr)
			}
		})
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() with a duplicate id should panic")
		}
	}()
	Register(Profile{ID: "sniper"})
}

func TestListIsACopy(t *testing.T) {
	list := List()
	list[0].Aggression = -1

	p, _ := Get(list[0].ID)
	if p.Aggression == -1 {
		t.Error("mutating List() result changed the registry")
	}
}
