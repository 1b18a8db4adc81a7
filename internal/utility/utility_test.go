package utility

import "testing"

func TestRandomAvatar(t *testing.T) {
	for i := 0; i < 100; i++ {
		a := RandomAvatar()
		if a == "" {
			t.Fatal("RandomAvatar() returned empty string")
		}
	}
}

func TestRandomAvatar_FromSet(t *testing.T) {
	set := make(map[string]bool, len(avatars))
	for _, a := range avatars {
		set[a] = true
	}
	for i := 0; i < 100; i++ {
		if a := RandomAvatar(); !set[a] {
			t.Errorf("RandomAvatar() = %q, not in avatar set", a)
		}
	}
}
