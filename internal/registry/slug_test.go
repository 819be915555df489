package registry

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain name",
			in:   "The Matrix (1999)",
			want: "the-matrix-1999",
		},
		{
			name: "filename with dot preserved",
			in:   "my-movie.mp4",
			want: "my-movie.mp4",
		},
		{
			name: "whitespace runs collapse",
			in:   "some   movie \t name",
			want: "some-movie-name",
		},
		{
			name: "hyphen runs collapse",
			in:   "a -- b --- c",
			want: "a-b-c",
		},
		{
			name: "leading and trailing trimmed",
			in:   " --hello-- ",
			want: "hello",
		},
		{
			name: "uppercase folded",
			in:   "MOVIE_Name.MKV",
			want: "movie_name.mkv",
		},
		{
			name: "non-ascii letters dropped",
			in:   "čaj Früh 電影",
			want: "aj-frh",
		},
		{
			name: "symbols stripped",
			in:   "a!b@c#d$e",
			want: "abcde",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "normalizes to empty",
			in:   "(((???)))",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"The Matrix (1999)",
		"my-movie.mp4",
		"  weird   -- input__ ",
		"čaj Früh 電影",
		"",
		"a.b.c-d_e",
	}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSlugifyCharset(t *testing.T) {
	inputs := []string{
		"The Matrix (1999)",
		"hello world",
		"çüö šđž",
		"-- leading and trailing --",
		"a b c d e f",
	}
	for _, in := range inputs {
		got := Slugify(in)
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Slugify(%q) = %q has leading/trailing hyphen", in, got)
		}
		for _, r := range got {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '.' || r == '-'
			if !valid {
				t.Errorf("Slugify(%q) = %q contains invalid rune %q", in, got, r)
			}
		}
	}
}
