package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringDefault(t *testing.T) {
	require.Equal(t, "dev", String())
}

func TestStringWithCommit(t *testing.T) {
	orig, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = orig, origCommit })

	Version = "v1.2.0"
	GitCommit = "abc1234"
	require.Equal(t, "v1.2.0 (abc1234)", String())
}
