package queryfile

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/khuatbaonguyen123/linq/internal/queryplan"
)

// Load reads a query document from a .cue file or a directory of .cue
// files forming one CUE package, and compiles it into a plan.
//
// Directories go through CUE's package loader, so documents can be split
// across files that unify: a shared source definition in one file and the
// pipeline in another.
func Load(path string) (*queryplan.Plan, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("query path not found: %s", path),
		}
	}

	args := []string{path}
	var cfg *load.Config
	if info.IsDir() {
		args = []string{"."}
		cfg = &load.Config{Dir: path}
	}
	instances := load.Instances(args, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{
			Code:    ErrCodeLoadFailed,
			Message: fmt.Sprintf("no CUE instances loaded from %s", path),
		}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{
			Code:    ErrCodeLoadFailed,
			Message: fmt.Sprintf("loading CUE files: %v", inst.Err),
			Pos:     firstPos(inst.Err),
		}
	}

	ctx := cuecontext.New()
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeBuildFailed,
			Message: fmt.Sprintf("building CUE value: %v", err),
			Pos:     firstPos(err),
		}
	}

	query := value.LookupPath(cue.ParsePath("query"))
	if !query.Exists() {
		return nil, &LoadError{
			Code:    ErrCodeNoQuery,
			Message: fmt.Sprintf("no query declaration found in %s", path),
		}
	}

	return Compile(query)
}

func firstPos(err error) token.Pos {
	if positions := cueerrors.Positions(err); len(positions) > 0 {
		return positions[0]
	}
	return token.NoPos
}
