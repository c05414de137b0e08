package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{name: "three parts", input: "4.5.16", want: Version{Major: 4, Minor: 5, Patch: 16}},
		{name: "four parts", input: "4.5.16.25", want: Version{Major: 4, Minor: 5, Patch: 16, Build: 25}},
		{name: "leading v", input: "v4.5.16", want: Version{Major: 4, Minor: 5, Patch: 16}},
		{name: "repeated leading v", input: "vv4.5.16", want: Version{Major: 4, Minor: 5, Patch: 16}},
		{name: "zeroes", input: "0.0.0", want: Version{}},
		{name: "two parts", input: "4.5", wantErr: true},
		{name: "five parts", input: "1.2.3.4.5", wantErr: true},
		{name: "words", input: "a.b.c", wantErr: true},
		{name: "pre-release suffix", input: "4.5.16-beta2", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "inner v", input: "4.v5.16", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustParse("not a version") })
	assert.Equal(t, Version{Major: 4, Minor: 5, Patch: 16}, MustParse("4.5.16"))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		want  int
	}{
		{name: "equal", left: "4.5.16", right: "4.5.16", want: 0},
		{name: "equal with explicit zero build", left: "4.5.16", right: "4.5.16.0", want: 0},
		{name: "build breaks tie", left: "4.5.16", right: "4.5.16.1", want: -1},
		{name: "patch", left: "4.5.9", right: "4.5.10", want: -1},
		{name: "minor beats patch", left: "4.6.0", right: "4.5.99", want: 1},
		{name: "major beats all", left: "5.0.0", right: "4.99.99.99", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := MustParse(tt.left), MustParse(tt.right)
			assert.Equal(t, tt.want, left.Compare(right))
			assert.Equal(t, -tt.want, right.Compare(left))
			assert.Equal(t, tt.want < 0, left.Less(right))
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "4.5.16", MustParse("4.5.16").String())
	assert.Equal(t, "4.5.16", Version{Major: 4, Minor: 5, Patch: 16}.String())
	assert.Equal(t, "4.5.16.25", MustParse("4.5.16.25").String())
	assert.Equal(t, "0.0.0", Version{}.String())
}
