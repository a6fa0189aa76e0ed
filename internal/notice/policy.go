package notice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/rs/zerolog/log"
)

// Variables available to an eligibility policy expression.
const (
	PolicyVarShow       = "show"
	PolicyVarItemID     = "item_id"
	PolicyVarAgeSeconds = "age_seconds"
)

// CompilePolicy compiles a CEL expression into an EligibilityOverride.
//
// The expression sees the computed decision as `show`, the item id as `item_id`
// and the age as `age_seconds`, and must evaluate to a bool. For example
// `show && item_id != 42` suppresses the notice on one item, and
// `show || age_seconds > 315360000` forces it for anything older than ten years.
// The policy only runs for items that passed the enabled, post type, opt-out and
// category checks.
//
// An empty expression returns a nil override. Evaluation errors keep the
// computed decision.
func CompilePolicy(expr string) (EligibilityOverride, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	env, err := cel.NewEnv(
		cel.Variable(PolicyVarShow, cel.BoolType),
		cel.Variable(PolicyVarItemID, cel.IntType),
		cel.Variable(PolicyVarAgeSeconds, cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create policy environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile eligibility policy: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.New("eligibility policy must evaluate to a bool")
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build eligibility policy: %w", err)
	}

	return func(show bool, itemID int64, ageSeconds int64) bool {
		out, _, err := program.Eval(map[string]any{
			PolicyVarShow:       show,
			PolicyVarItemID:     itemID,
			PolicyVarAgeSeconds: ageSeconds,
		})
		if err != nil {
			log.Warn().
				Err(err).
				Int64("item_id", itemID).
				Msg("Eligibility policy evaluation failed, keeping computed decision")
			return show
		}
		v, ok := out.Value().(bool)
		if !ok {
			return show
		}
		return v
	}, nil
}
