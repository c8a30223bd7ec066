package players

import "testing"

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"Out":          StatusOut,
		" inactive ":   StatusOut,
		"Day-To-Day":   StatusDayToDay,
		"Questionable": StatusQuestionable,
		"Doubtful":     StatusQuestionable,
		"Probable":     StatusProbable,
		"":             StatusActive,
		"healthy":      StatusActive,
	}
	for input, want := range cases {
		if got := ParseStatus(input); got != want {
			t.Fatalf("ParseStatus(%q) expected %s, got %s", input, want, got)
		}
	}
}

func TestAveragesGet(t *testing.T) {
	a := Averages{Points: 25.1, Assists: 7.2, Rebounds: 5.5, Threes: 2.9}
	expected := map[Stat]float64{
		StatPoints:   25.1,
		StatAssists:  7.2,
		StatRebounds: 5.5,
		StatThrees:   2.9,
		Stat("fg"):   0,
	}
	for stat, want := range expected {
		if got := a.Get(stat); got != want {
			t.Fatalf("stat %s expected %v, got %v", stat, want, got)
		}
	}
}

func TestTrackedStatsOrder(t *testing.T) {
	if len(TrackedStats) != 4 || TrackedStats[0] != StatPoints {
		t.Fatalf("expected points first among four tracked stats, got %v", TrackedStats)
	}
}
