package strategy

import (
	"reflect"
	"sort"
	"testing"

	"github.com/atlasroulette/atlas-tracker/internal/wheel"
)

func TestScorerNeedsMinimumHistory(t *testing.T) {
	sc := NewScorer()
	res := sc.Evaluate(repeat(5, MinSpinsAnalysis-1))
	if res.Active {
		t.Fatal("should not fire below the minimum history")
	}
	if len(res.Numbers) != 0 {
		t.Fatalf("inactive result carries bets: %v", res.Numbers)
	}
}

func TestScorerSelection(t *testing.T) {
	sc := NewScorer()
	res := sc.Evaluate(repeat(5, 12))
	if !res.Active {
		t.Fatalf("expected active, got %q", res.Rationale)
	}
	if len(res.Numbers) == 0 || len(res.Numbers) > sc.MaxBets {
		t.Fatalf("bet count = %d, want 1..%d", len(res.Numbers), sc.MaxBets)
	}
	if !sort.IntsAreSorted(res.Numbers) {
		t.Fatalf("bets not sorted: %v", res.Numbers)
	}
	seen := map[int]bool{}
	for _, n := range res.Numbers {
		if !wheel.Valid(n) {
			t.Fatalf("invalid bet %d", n)
		}
		if seen[n] {
			t.Fatalf("duplicate bet %d", n)
		}
		seen[n] = true
	}
	if res.Metrics["cold"] != 36 {
		t.Fatalf("cold metric = %v, want 36", res.Metrics["cold"])
	}
}

func TestScorerColdBoost(t *testing.T) {
	sc := NewScorer()
	res := sc.Evaluate(repeat(5, 12))
	// Every number except 5 is cold and under pressure, which alone is
	// worth 630 + 336 points.
	for n := 0; n <= 36; n++ {
		if n == 5 {
			continue
		}
		if res.Scores[n] < 630+336 {
			t.Fatalf("score[%d] = %.1f, want >= 966", n, res.Scores[n])
		}
	}
}

func TestScorerDeterministic(t *testing.T) {
	history := []int{5, 17, 23, 0, 8, 31, 14, 26, 3, 19, 11, 36, 2, 29, 7}
	sc := NewScorer()
	a := sc.Evaluate(history)
	b := sc.Evaluate(history)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("evaluation is not deterministic")
	}
}

func TestScorerHonorsMaxBets(t *testing.T) {
	sc := &Scorer{MaxBets: 5, Weights: DefaultWeights()}
	res := sc.Evaluate(repeat(5, 12))
	if len(res.Numbers) > 5 {
		t.Fatalf("bet count = %d, want <= 5", len(res.Numbers))
	}
}

func TestDiversifyRejectsRedundantCoverage(t *testing.T) {
	// 23 and 13 share zone, terminal and sextant, so the second one only
	// gets in on raw score.
	var scores ScoreTable
	scores[23] = 500
	scores[13] = 100
	got := diversify([]int{23, 13}, scores, 12)
	if !reflect.DeepEqual(got, []int{23}) {
		t.Fatalf("selection = %v, want [23]", got)
	}

	scores[13] = scoreOverride + 1
	got = diversify([]int{23, 13}, scores, 12)
	if !reflect.DeepEqual(got, []int{23, 13}) {
		t.Fatalf("selection = %v, want [23 13]", got)
	}
}

func TestDiversifyRespectsCap(t *testing.T) {
	ranked := make([]int, 37)
	var scores ScoreTable
	for i := range ranked {
		ranked[i] = i
		scores[i] = scoreOverride + 1
	}
	if got := diversify(ranked, scores, 4); len(got) != 4 {
		t.Fatalf("selection = %v, want 4 entries", got)
	}
}
