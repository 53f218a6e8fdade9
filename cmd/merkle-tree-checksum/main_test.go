package main

import "testing"

func TestCountQuiet(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want int
	}{
		{"none", []string{"merkle-tree-checksum", "generate-hash"}, 0},
		{"once long", []string{"merkle-tree-checksum", "--quiet", "generate-hash"}, 1},
		{"once short", []string{"merkle-tree-checksum", "-q", "generate-hash"}, 1},
		{"twice mixed", []string{"merkle-tree-checksum", "-q", "--quiet", "generate-hash"}, 2},
		{"combined short", []string{"merkle-tree-checksum", "-qq", "generate-hash"}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := countQuiet(tc.args); got != tc.want {
				t.Errorf("countQuiet(%v) = %d, want %d", tc.args, got, tc.want)
			}
		})
	}
}
