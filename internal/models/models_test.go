package models

import "testing"

func TestDefaultIsSupported(t *testing.T) {
	if !IsSupported(Default) {
		t.Errorf("default model %q must be in the supported set", Default)
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"u2net", true},
		{"u2netp", true},
		{"silueta", true},
		{"isnet-general-use", true},
		{"isnet-anime", true},
		{"birefnet-general", true},
		{"birefnet-general-lite", true},
		{"sam", true},
		{"not-a-model", false},
		{"", false},
		{"U2NET", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsSupported(tt.id); got != tt.want {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestAllMetadataComplete(t *testing.T) {
	all := All()
	if len(all) != 8 {
		t.Fatalf("expected 8 supported models, got %d", len(all))
	}

	seen := make(map[string]bool)
	for _, m := range all {
		if m.ID == "" || m.Name == "" || m.Description == "" || m.Size == "" {
			t.Errorf("model %+v has incomplete metadata", m)
		}
		if seen[m.ID] {
			t.Errorf("duplicate model id %q", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestIDsMatchAll(t *testing.T) {
	all := All()
	ids := IDs()
	if len(ids) != len(all) {
		t.Fatalf("IDs has %d entries, All has %d", len(ids), len(all))
	}
	for i := range ids {
		if ids[i] != all[i].ID {
			t.Errorf("IDs[%d] = %q, want %q", i, ids[i], all[i].ID)
		}
	}
}
