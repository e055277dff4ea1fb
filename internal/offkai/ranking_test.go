package offkai

import "testing"

func TestDrinkRanking(t *testing.T) {
	r1 := reg(1, 1)
	r1.Drinks = []string{"beer", "beer"}
	r2 := reg(2, 0)
	r2.Drinks = []string{"wine"}
	w1 := reg(3, 0)
	w1.Drinks = []string{"beer"}

	b := EventBucket{Confirmed: []*Registration{r1, r2}, Waitlist: []*WaitlistEntry{w1}}
	ranking := DrinkRanking(b)
	if len(ranking) != 2 {
		t.Fatalf("expected 2 distinct drinks, got %d", len(ranking))
	}
	if ranking[0].Drink != "beer" || ranking[0].Count != 3 {
		t.Fatalf("expected beer=3 first, got %+v", ranking[0])
	}
	if ranking[1].Drink != "wine" || ranking[1].Count != 1 {
		t.Fatalf("expected wine=1 second, got %+v", ranking[1])
	}
}
