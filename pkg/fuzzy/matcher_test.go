package fuzzy

import (
	"testing"
)

func TestClosestMatchesTypo(t *testing.T) {
	got := ClosestMatches("isntall", []string{"install", "remove", "update"}, WithMaxResults(1), WithMinRatio(0.6))
	if len(got) != 1 || got[0] != "install" {
		t.Errorf("expected [install], got %v", got)
	}
}

func TestClosestMatchesNothingClose(t *testing.T) {
	got := ClosestMatches("zzz999", []string{"install", "remove", "update"}, WithMaxResults(1), WithMinRatio(0.6))
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestClosestMatchesOrdering(t *testing.T) {
	got := ClosestMatches("brnch", []string{"bench", "branch", "brunch"}, WithMaxResults(0), WithMinRatio(0.5))
	if len(got) == 0 || got[0] != "branch" {
		t.Fatalf("expected branch first, got %v", got)
	}
}

func TestRankStableOnTies(t *testing.T) {
	// "abd" and "abe" score identically against "abc".
	ranked := Rank("abc", []string{"abd", "zzz", "abe"}, WithMaxResults(0), WithMinRatio(0.5))
	if len(ranked) != 2 {
		t.Fatalf("expected 2 matches, got %v", ranked)
	}
	if ranked[0].Text != "abd" || ranked[1].Text != "abe" {
		t.Errorf("ties must keep candidate order, got %v", ranked)
	}
	if ranked[0].Index != 0 || ranked[1].Index != 2 {
		t.Errorf("unexpected indices %v", ranked)
	}
}

func TestDefaultMaxResults(t *testing.T) {
	got := ClosestMatches("test", []string{"test", "tests", "testa", "testb", "tester"})
	if len(got) != DefaultMaxResults {
		t.Errorf("expected %d results, got %v", DefaultMaxResults, got)
	}
	if got[0] != "test" {
		t.Errorf("exact match should rank first, got %v", got)
	}
}

func TestRatio(t *testing.T) {
	if r := Ratio("same", "same"); r != 1.0 {
		t.Errorf("expected 1.0, got %f", r)
	}
	if r := Ratio("abc", "xyz"); r != 0 {
		t.Errorf("expected 0, got %f", r)
	}
	// 2*6/14: "tall" plus two single-character blocks.
	if r := Ratio("isntall", "install"); r < 0.85 || r > 0.86 {
		t.Errorf("unexpected ratio %f", r)
	}
}

func TestClosest(t *testing.T) {
	best, ok := Closest("stauts", []string{"stash", "status", "show"})
	if !ok || best != "status" {
		t.Errorf("expected status, got %q (%v)", best, ok)
	}
	if _, ok := Closest("qqqq", []string{"status"}); ok {
		t.Error("expected no match")
	}
}

func TestDeterministic(t *testing.T) {
	candidates := []string{"checkout", "cherry-pick", "check", "commit", "clone"}
	first := ClosestMatches("chekout", candidates)
	for i := 0; i < 20; i++ {
		again := ClosestMatches("chekout", candidates)
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed", i)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: order changed: %v vs %v", i, first, again)
			}
		}
	}
}

func TestFilter(t *testing.T) {
	names := []string{"git_pull", "git_push_set_upstream", "cp_create_destination"}
	got := Filter("gpl", names)
	if len(got) != 1 || got[0] != "git_pull" {
		t.Errorf("expected [git_pull], got %v", got)
	}
	if len(Filter("", names)) != 3 {
		t.Error("empty pattern should keep all names")
	}
}
