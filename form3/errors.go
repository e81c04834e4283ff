package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/pkg/errors"
	"github.com/soypat/raydist"
	"go.uber.org/multierr"
)

// shapeErr is a must3 panic recovered into an error.
type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// guard calls build and recovers its panic into an error.
func guard(build func() raydist.Primitive) (p raydist.Primitive, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return build(), nil
}

// ValidateAll validates every primitive and returns all failures combined.
// Each error names the index of the offending primitive.
func ValidateAll(prims []raydist.Primitive) error {
	var err error
	for i, p := range prims {
		if e := p.Validate(); e != nil {
			err = multierr.Append(err, errors.Wrapf(e, "primitive %d", i))
		}
	}
	return err
}
