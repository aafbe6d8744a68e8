package reviews

import "testing"

func TestRoundedMean(t *testing.T) {
	cases := []struct {
		ratings []int
		want    float64
	}{
		{nil, 0},
		{[]int{5}, 5},
		{[]int{4, 5}, 4.5},
		{[]int{5, 4, 4}, 4.3},
		{[]int{1, 2, 2}, 1.7},
		{[]int{3, 4, 4, 4, 5, 5}, 4.2},
	}
	for _, tc := range cases {
		if got := RoundedMean(tc.ratings); got != tc.want {
			t.Fatalf("RoundedMean(%v) = %v, want %v", tc.ratings, got, tc.want)
		}
	}
}
