package similarity

import (
	"math"
	"testing"
)

const tolerance = 1e-3

func TestJaccard(t *testing.T) {
	tests := []struct {
		name  string
		text1 string
		text2 string
		want  float64
	}{
		{
			name:  "identical texts",
			text1: "the quick brown fox",
			text2: "the quick brown fox",
			want:  1.0,
		},
		{
			name:  "case and repetition ignored",
			text1: "The THE the fox",
			text2: "the fox",
			want:  1.0,
		},
		{
			name:  "both empty",
			text1: "",
			text2: "",
			want:  1.0,
		},
		{
			name:  "one empty",
			text1: "hello world",
			text2: "",
			want:  0.0,
		},
		{
			name:  "disjoint token sets",
			text1: "alpha beta",
			text2: "gamma delta",
			want:  0.0,
		},
		{
			name:  "half overlap",
			text1: "a b c",
			text2: "b c d",
			want:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(tt.text1, tt.text2)
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("Jaccard(%q, %q) = %f, want %f", tt.text1, tt.text2, got, tt.want)
			}
		})
	}
}

func TestJaccard_Symmetric(t *testing.T) {
	a, b := "the quick brown fox", "a lazy brown dog"
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Errorf("Jaccard is not symmetric for %q and %q", a, b)
	}
}

func TestCosineTfIdf(t *testing.T) {
	tests := []struct {
		name  string
		text1 string
		text2 string
		want  float64
	}{
		{
			name:  "identical texts score one",
			text1: "the quick brown fox",
			text2: "the quick brown fox",
			want:  1.0,
		},
		{
			name:  "both empty",
			text1: "",
			text2: "",
			want:  1.0,
		},
		{
			name:  "one empty",
			text1: "",
			text2: "hello",
			want:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineTfIdf(tt.text1, tt.text2)
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("CosineTfIdf(%q, %q) = %f, want %f", tt.text1, tt.text2, got, tt.want)
			}
		})
	}
}

func TestCosineTfIdf_DisjointTexts(t *testing.T) {
	got := CosineTfIdf("alpha beta gamma", "delta epsilon zeta")
	if got > tolerance {
		t.Errorf("disjoint texts should score near zero, got %f", got)
	}
}

func TestCosineTfIdf_OverlapRanksHigher(t *testing.T) {
	near := CosineTfIdf("the cat sat on the mat", "the cat sat on a mat")
	far := CosineTfIdf("the cat sat on the mat", "stock prices fell sharply today")

	if near <= far {
		t.Errorf("expected overlapping texts to score higher: near=%f far=%f", near, far)
	}
}

func TestCosineTfIdf_Bounded(t *testing.T) {
	pairs := [][2]string{
		{"a b c", "a b c d"},
		{"repeated repeated words", "repeated words"},
		{"x", "y"},
	}
	for _, pair := range pairs {
		got := CosineTfIdf(pair[0], pair[1])
		if got < 0 || got > 1.0+tolerance {
			t.Errorf("CosineTfIdf(%q, %q) = %f, out of [0, 1]", pair[0], pair[1], got)
		}
	}
}
