package cfg

import (
	"bytes"
	"io"

	"github.com/drone/envsubst"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// YAML returns a Source reading the file at path. An empty path is a no-op.
func YAML(path string, expandEnv bool) Source {
	return YAMLFs(afero.NewOsFs(), path, expandEnv)
}

// YAMLFs is YAML reading from fs.
func YAMLFs(fs afero.Fs, path string, expandEnv bool) Source {
	return func(dst Registerer) error {
		if path == "" {
			return nil
		}
		b, err := afero.ReadFile(fs, path)
		if err != nil {
			return errors.Wrap(err, "read config file")
		}
		if err = dYAML(b, expandEnv)(dst); err != nil {
			return errors.Wrapf(err, "parse config file %s", path)
		}
		return nil
	}
}

// dYAML decodes y into dst, rejecting unknown fields. With expandEnv set,
// ${VAR} references are substituted before decoding.
func dYAML(y []byte, expandEnv bool) Source {
	return func(dst Registerer) error {
		if expandEnv {
			s, err := envsubst.EvalEnv(string(y))
			if err != nil {
				return errors.Wrap(err, "expand environment variables")
			}
			y = []byte(s)
		}
		dec := yaml.NewDecoder(bytes.NewReader(y))
		dec.KnownFields(true)
		if err := dec.Decode(dst); err != nil && err != io.EOF {
			return err
		}
		return nil
	}
}
