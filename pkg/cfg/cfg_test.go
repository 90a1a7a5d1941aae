package cfg

import (
	"flag"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Workers int        `yaml:"workers"`
	Name    string     `yaml:"name"`
	Nested  nestedConf `yaml:"nested"`
}

type nestedConf struct {
	Enabled bool `yaml:"enabled"`
}

func (c *testConfig) RegisterFlags(f *flag.FlagSet) {
	f.IntVar(&c.Workers, "workers", 2, "")
	f.StringVar(&c.Name, "name", "default", "")
	f.BoolVar(&c.Nested.Enabled, "nested.enabled", true, "")
}

func (c *testConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}
	return nil
}

func TestUnmarshal(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/full.yaml", []byte("workers: 8\nname: ${TEST_CFG_NAME}\nnested:\n  enabled: false\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/partial.yaml", []byte("name: partial\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/empty.yaml", nil, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/unknown.yaml", []byte("colour: blue\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/invalid.yaml", []byte("workers: 0\n"), 0o644))
	t.Setenv("TEST_CFG_NAME", "from-env")

	for _, tc := range []struct {
		name      string
		path      string
		expandEnv bool
		want      testConfig
		err       bool
	}{
		{name: "no file", want: testConfig{Workers: 2, Name: "default", Nested: nestedConf{Enabled: true}}},
		{name: "empty file", path: "/empty.yaml", want: testConfig{Workers: 2, Name: "default", Nested: nestedConf{Enabled: true}}},
		{name: "partial", path: "/partial.yaml", want: testConfig{Workers: 2, Name: "partial", Nested: nestedConf{Enabled: true}}},
		{name: "expand env", path: "/full.yaml", expandEnv: true, want: testConfig{Workers: 8, Name: "from-env"}},
		{name: "no env expansion", path: "/full.yaml", want: testConfig{Workers: 8, Name: "${TEST_CFG_NAME}"}},
		{name: "unknown field", path: "/unknown.yaml", err: true},
		{name: "invalid", path: "/invalid.yaml", err: true},
		{name: "missing", path: "/missing.yaml", err: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var c testConfig
			err := Unmarshal(&c, Defaults(nil), YAMLFs(fs, tc.path, tc.expandEnv))
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, c)
		})
	}
}

func TestDefaults_FlagSet(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var c testConfig
	require.NoError(t, Unmarshal(&c, Defaults(fs)))
	require.NoError(t, fs.Parse([]string{"-workers=5"}))
	require.Equal(t, 5, c.Workers)
	require.NotNil(t, fs.Lookup("nested.enabled"))
}
