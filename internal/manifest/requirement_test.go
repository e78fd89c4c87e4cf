package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequirement_Semver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		admits  []string
		rejects []string
	}{
		{
			name:    "exact version",
			raw:     "5.6.4",
			admits:  []string{"5.6.4"},
			rejects: []string{"5.6.5", "5.7.0"},
		},
		{
			name:    "pessimistic operator",
			raw:     "~> 5.6",
			admits:  []string{"5.6.0", "5.6.9"},
			rejects: []string{"5.7.0", "6.0.0"},
		},
		{
			name:    "range",
			raw:     ">= 5.0, < 6.0",
			admits:  []string{"5.0.0", "5.9.9"},
			rejects: []string{"4.9.9", "6.0.0"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := ParseRequirement(tt.raw)
			require.NoError(t, err)
			require.False(t, req.IsGitPin())
			require.Equal(t, tt.raw, req.Raw)

			for _, version := range tt.admits {
				require.True(t, req.Admits(version), "expected %q to admit %q", tt.raw, version)
			}
			for _, version := range tt.rejects {
				require.False(t, req.Admits(version), "expected %q to reject %q", tt.raw, version)
			}
		})
	}
}

func TestParseRequirement_GitPins(t *testing.T) {
	t.Parallel()

	branch, err := ParseRequirement("branch:main")
	require.NoError(t, err)
	require.True(t, branch.IsGitPin())
	require.Equal(t, "main", branch.Branch)
	require.False(t, branch.Admits("1.0.0"), "git pins admit no versions")

	revision, err := ParseRequirement("revision:3f8a1c2")
	require.NoError(t, err)
	require.True(t, revision.IsGitPin())
	require.Equal(t, "3f8a1c2", revision.Revision)
}

func TestParseRequirement_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "branch:", "revision:", "not a version"} {
		_, err := ParseRequirement(raw)
		require.Error(t, err, "expected %q to be rejected", raw)
	}
}
