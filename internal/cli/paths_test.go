package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestPathsCommand_Golden(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DATABASES_DIR", "/app/DatabasesMount")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("COMPTA_CONFIG", "")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"paths"})

	require.NoError(t, cmd.Execute())

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "paths_prod", out.Bytes())
}
