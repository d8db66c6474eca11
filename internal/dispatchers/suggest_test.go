package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical strings", a: "install", b: "install", want: 0},
		{name: "one character difference", a: "list", b: "lists", want: 1},
		{name: "typo - transposition", a: "list", b: "lsit", want: 2},
		{name: "typo - substitution", a: "save", b: "sane", want: 1},
		{name: "completely different", a: "exit", b: "xyz123", want: 6},
		{name: "empty string a", a: "", b: "view", want: 4},
		{name: "empty string b", a: "view", b: "", want: 4},
		{name: "both empty", a: "", b: "", want: 0},
		{name: "case insensitive", a: "CONFIGURE", b: "configure", want: 0},
		{name: "missing letter", a: "configure", b: "confgure", want: 1},
		{name: "extra letter", a: "platform", b: "platfform", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, levenshtein(tt.a, tt.b))
		})
	}
}

func TestFindSimilarCommands(t *testing.T) {
	names := []string{"configure", "list", "install", "exit", "help"}

	tests := []struct {
		name       string
		input      string
		maxResults int
		want       []string
	}{
		{
			name:       "typo instal suggests install",
			input:      "instal",
			maxResults: 3,
			want:       []string{"install"},
		},
		{
			name:       "typo confgure suggests configure",
			input:      "confgure",
			maxResults: 3,
			want:       []string{"configure"},
		},
		{
			name:       "completely different returns nothing",
			input:      "xyz123",
			maxResults: 3,
			want:       []string{},
		},
		{
			name:       "exact match is not a suggestion",
			input:      "install",
			maxResults: 3,
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilarCommands(tt.input, names, tt.maxResults)
			if len(tt.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFindSimilarCommands_SortedByDistance(t *testing.T) {
	// trak -> track (distance 1), trak -> task (distance 2)
	got := FindSimilarCommands("trak", []string{"version", "task", "track"}, 3)

	require.Equal(t, []string{"track", "task"}, got)
}

func TestFindSimilarCommands_MaxResults(t *testing.T) {
	got := FindSimilarCommands("ab", []string{"abc", "abd", "abe", "abf"}, 2)

	require.Equal(t, []string{"abc", "abd"}, got)
}
