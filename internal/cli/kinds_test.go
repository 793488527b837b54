package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestKinds_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	out, _, err := run(t, "", "kinds")
	require.NoError(t, err)
	g.Assert(t, "kinds_text", []byte(out))

	out, _, err = run(t, "", "kinds", "--format", "json")
	require.NoError(t, err)
	g.Assert(t, "kinds_json", []byte(out))
}
