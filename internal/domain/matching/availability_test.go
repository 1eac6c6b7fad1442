package matching

import "testing"

func TestOverlap_Basic(t *testing.T) {
	a := map[string][]string{"Monday": {"Morning"}}
	b := map[string][]string{"Monday": {"Morning", "Evening"}}

	got := Overlap(a, b)
	if got.Percentage != 0.5 {
		t.Fatalf("percentage = %v, want 0.5", got.Percentage)
	}
	if len(got.CommonSlots) != 1 || got.CommonSlots[0] != "Monday_Morning" {
		t.Fatalf("common slots = %v, want [Monday_Morning]", got.CommonSlots)
	}
}

func TestOverlap_EmptySide(t *testing.T) {
	b := map[string][]string{"Tuesday": {"Afternoon"}}

	got := Overlap(nil, b)
	if got.Percentage != 0 {
		t.Fatalf("percentage = %v, want 0", got.Percentage)
	}
	if got.CommonSlots == nil || len(got.CommonSlots) != 0 {
		t.Fatalf("common slots = %v, want empty non-nil slice", got.CommonSlots)
	}
}

func TestOverlap_Disjoint(t *testing.T) {
	a := map[string][]string{"Monday": {"Morning"}}
	b := map[string][]string{"Friday": {"Evening"}}

	got := Overlap(a, b)
	if got.Percentage != 0 || len(got.CommonSlots) != 0 {
		t.Fatalf("disjoint overlap = %+v, want zero", got)
	}
}

func TestOverlap_SortedCommonSlots(t *testing.T) {
	a := map[string][]string{"Monday": {"Morning", "Evening"}, "Friday": {"Night"}}
	b := map[string][]string{"Monday": {"Evening", "Morning"}, "Friday": {"Night"}}

	got := Overlap(a, b)
	if got.Percentage != 1.0 {
		t.Fatalf("percentage = %v, want 1.0", got.Percentage)
	}
	want := []string{"Friday_Night", "Monday_Evening", "Monday_Morning"}
	if len(got.CommonSlots) != len(want) {
		t.Fatalf("common slots = %v, want %v", got.CommonSlots, want)
	}
	for i := range want {
		if got.CommonSlots[i] != want[i] {
			t.Fatalf("common slots = %v, want sorted %v", got.CommonSlots, want)
		}
	}
}
