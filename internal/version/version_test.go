package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Version
		expectErr bool
	}{
		{
			name:  "Valid version",
			input: "1.2.3",
			want:  Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:      "Missing patch",
			input:     "1.2",
			expectErr: true,
		},
		{
			name:      "Too many segments",
			input:     "1.2.3.4",
			expectErr: true,
		},
		{
			name:      "Non-numeric parts",
			input:     "a.b.c",
			expectErr: true,
		},
		{
			name:      "Signed component",
			input:     "1.-2.3",
			expectErr: true,
		},
		{
			name:      "Empty component",
			input:     "1..3",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)

			if tt.expectErr {
				assert.Error(t, err, "input %q", tt.input)
				return
			}
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Version
		expectErr bool
	}{
		{
			name:  "Release tag",
			input: "v1.2.3",
			want:  Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:  "Zero version",
			input: "v0.0.1",
			want:  Version{Major: 0, Minor: 0, Patch: 1},
		},
		{
			name:      "Missing v prefix",
			input:     "1.2.3",
			expectErr: true,
		},
		{
			name:      "Pre-release suffix",
			input:     "v1.0.0-rc1",
			expectErr: true,
		},
		{
			name:      "Build metadata",
			input:     "v1.0.0+build.5",
			expectErr: true,
		},
		{
			name:      "Branch name",
			input:     "main",
			expectErr: true,
		},
		{
			name:      "Empty",
			input:     "",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTag(tt.input)

			if tt.expectErr {
				assert.Error(t, err, "input %q", tt.input)
				return
			}
			require.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsReleaseTag(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"v1.2.3", true},
		{"v0.0.1", true},
		{"v10.20.30", true},
		{"v1.0.0-rc1", false},
		{"v1.2", false},
		{"1.2.3", false},
		{"version-one", false},
		{"main", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsReleaseTag(tt.input), "IsReleaseTag(%q)", tt.input)
	}
}

func TestTagRoundTrip(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3}
	assert.Equal(t, "v1.2.3", v.Tag())

	parsed, err := ParseTag(v.Tag())
	require.NoError(t, err)
	assert.Equal(t, v, parsed)
}

func TestLessThan(t *testing.T) {
	tests := []struct {
		a, b Version
		want bool
	}{
		{Version{1, 0, 0}, Version{1, 0, 1}, true},
		{Version{1, 2, 0}, Version{1, 3, 0}, true},
		{Version{1, 2, 3}, Version{2, 0, 0}, true},
		{Version{2, 0, 0}, Version{1, 2, 3}, false},
		{Version{1, 2, 3}, Version{1, 2, 3}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.LessThan(tt.b), "LessThan(%v, %v)", tt.a, tt.b)
	}
}
