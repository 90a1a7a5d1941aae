// Package cfg fills configuration structs from an ordered list of sources.
// Later sources override earlier ones.
package cfg

import (
	"flag"

	"github.com/pkg/errors"
)

// Registerer is a configuration struct declaring its flags and defaults.
type Registerer interface {
	RegisterFlags(f *flag.FlagSet)
}

// Validator is implemented by configuration structs that check themselves
// once every source has been applied.
type Validator interface {
	Validate() error
}

// Source fills dst from one place, such as flag defaults or a file.
type Source func(dst Registerer) error

// Unmarshal applies every source to dst in order, then validates dst.
func Unmarshal(dst Registerer, sources ...Source) error {
	for _, source := range sources {
		if err := source(dst); err != nil {
			return err
		}
	}
	if v, ok := dst.(Validator); ok {
		if err := v.Validate(); err != nil {
			return errors.Wrap(err, "invalid configuration")
		}
	}
	return nil
}

// Defaults sets every field to the default value of its flag. The flags are
// registered on fs, or on a throwaway set when fs is nil.
func Defaults(fs *flag.FlagSet) Source {
	return func(dst Registerer) error {
		f := fs
		if f == nil {
			f = flag.NewFlagSet("defaults", flag.ContinueOnError)
		}
		dst.RegisterFlags(f)
		return nil
	}
}
