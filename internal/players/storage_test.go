package players

import (
	"sync"
	"testing"
)

func TestNewStore(t *testing.T) {
	s := NewStore()
	if s == nil {
		t.Fatal("NewStore() returned nil")
	}
	if len(s.GetList()) != 0 {
		t.Errorf("new store should be empty, got %d players", len(s.GetList()))
	}
}

func TestStore_Add(t *testing.T) {
	s := NewStore()
	p := s.Add("id1", "Alice", "🌱")

	if p.Identity != "id1" {
		t.Errorf("Identity = %q, want %q", p.Identity, "id1")
	}
	if p.Name != "Alice" {
		t.Errorf("Name = %q, want %q", p.Name, "Alice")
	}
	if p.Avatar != "🌱" {
		t.Errorf("Avatar = %q, want %q", p.Avatar, "🌱")
	}
	if p.Role != RoleInvestor {
		t.Errorf("Role = %q, want investor", p.Role)
	}
	if p.Remaining != StartingBudget {
		t.Errorf("Remaining = %v, want %v", p.Remaining, StartingBudget)
	}
	if len(p.Allocations) != 0 {
		t.Error("new player should have no allocations")
	}
	if p.LastSubmit != nil {
		t.Error("new player should have no submit timestamp")
	}
}

func TestStore_Add_EmptyAvatar(t *testing.T) {
	s := NewStore()
	p := s.Add("id1", "Alice", "")
	if p.Avatar == "" {
		t.Error("empty avatar should be replaced with a random one")
	}
}

func TestStore_Add_DuplicateIdentity(t *testing.T) {
	s := NewStore()
	first := s.Add("id1", "Alice", "🌱")
	second := s.Add("id1", "Mallory", "🔋")

	if second != first {
		t.Error("re-adding an identity should return the original entry")
	}
	if second.Name != "Alice" || second.Avatar != "🌱" {
		t.Errorf("existing entry mutated: %+v", second)
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}
}

func TestStore_Get(t *testing.T) {
	s := NewStore()
	s.Add("id1", "Alice", "")

	if p := s.Get("id1"); p == nil || p.Name != "Alice" {
		t.Errorf("Get(id1) = %+v, want Alice", p)
	}
	if s.Get("nonexistent") != nil {
		t.Error("Get should return nil for nonexistent player")
	}
}

func TestStore_FindByName_FirstMatch(t *testing.T) {
	s := NewStore()
	s.Add("id1", "Alice", "")
	s.Add("id2", "Alice", "")

	p := s.FindByName("Alice")
	if p == nil {
		t.Fatal("FindByName returned nil for existing name")
	}
	if p.Identity != "id1" {
		t.Errorf("FindByName should return first match in join order, got %q", p.Identity)
	}
	if s.FindByName("Zed") != nil {
		t.Error("FindByName should return nil for unknown name")
	}
}

func TestStore_GetList_JoinOrder(t *testing.T) {
	s := NewStore()
	s.Add("id1", "Alice", "")
	s.Add("id2", "Bob", "")
	s.Add("id3", "Carol", "")

	list := s.GetList()
	if len(list) != 3 {
		t.Fatalf("GetList() returned %d players, want 3", len(list))
	}
	for i, want := range []string{"Alice", "Bob", "Carol"} {
		if list[i].Name != want {
			t.Errorf("list[%d].Name = %q, want %q", i, list[i].Name, want)
		}
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	s.Add("id1", "Alice", "")
	s.Add("id2", "Bob", "")

	if !s.Remove("id1") {
		t.Error("Remove should return true for existing player")
	}
	if s.Get("id1") != nil {
		t.Error("player should be gone after removal")
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, want 1", s.Count())
	}
	if s.Remove("nonexistent") {
		t.Error("Remove should return false for nonexistent player")
	}
}

func TestStore_SetRoles(t *testing.T) {
	s := NewStore()
	s.Add("id1", "Alice", "")
	s.Add("id2", "Bob", "")
	s.Add("id3", "Carol", "")

	s.SetRoles("id2")

	adversaries := 0
	for _, p := range s.GetList() {
		switch {
		case p.Identity == "id2" && p.Role != RoleAdversary:
			t.Error("id2 should be adversary")
		case p.Identity != "id2" && p.Role != RoleInvestor:
			t.Errorf("%s should be investor", p.Identity)
		}
		if p.Role == RoleAdversary {
			adversaries++
		}
	}
	if adversaries != 1 {
		t.Errorf("adversary count = %d, want 1", adversaries)
	}

	// Reassignment flips the previous adversary back.
	s.SetRoles("id1")
	if s.Get("id2").Role != RoleInvestor {
		t.Error("id2 should be investor after reassignment")
	}
	if s.Get("id1").Role != RoleAdversary {
		t.Error("id1 should be adversary after reassignment")
	}
}

func TestStore_Commit(t *testing.T) {
	s := NewStore()
	s.Add("id1", "Alice", "")

	p := s.Commit("id1", map[int]float64{0: 60, 3: 20}, 20)
	if p == nil {
		t.Fatal("Commit returned nil for existing player")
	}
	if p.Remaining != 20 {
		t.Errorf("Remaining = %v, want 20", p.Remaining)
	}
	if p.LastSubmit == nil {
		t.Error("LastSubmit should be stamped")
	}

	// Replacement, not merge.
	p = s.Commit("id1", map[int]float64{1: 10}, 90)
	if len(p.Allocations) != 1 || p.Allocations[1] != 10 {
		t.Errorf("Allocations = %v, want full replacement {1:10}", p.Allocations)
	}

	if s.Commit("nonexistent", nil, 100) != nil {
		t.Error("Commit should return nil for nonexistent player")
	}
}

func TestStore_Roster_HidesAllocations(t *testing.T) {
	s := NewStore()
	s.Add("id1", "Alice", "🌊")
	s.Commit("id1", map[int]float64{0: 50}, 50)

	roster := s.Roster()
	if len(roster) != 1 {
		t.Fatalf("roster length = %d, want 1", len(roster))
	}
	entry := roster[0]
	if entry.Name != "Alice" || entry.Avatar != "🌊" || entry.Role != RoleInvestor || entry.Remaining != 50 {
		t.Errorf("unexpected roster entry: %+v", entry)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	s.Add("id1", "Alice", "")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Commit("id1", map[int]float64{0: 1}, 99)
			s.Roster()
		}()
	}
	wg.Wait()

	if p := s.Get("id1"); p.Remaining != 99 {
		t.Errorf("Remaining = %v, want 99", p.Remaining)
	}
}
