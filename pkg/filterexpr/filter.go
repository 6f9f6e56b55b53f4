package filterexpr

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

func parseFilter(filter string, fields map[string]Field) ([]Condition, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}
	if len(fields) == 0 {
		return nil, errors.New("filtering is not supported")
	}

	env, err := newEnv(fields)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("convert filter: %w", err)
	}

	terms, err := flattenAnd(parsed.GetExpr(), nil)
	if err != nil {
		return nil, err
	}

	conds := make([]Condition, 0, len(terms))
	for _, term := range terms {
		cond, err := toCondition(term)
		if err != nil {
			return nil, err
		}
		field, ok := fields[cond.Field]
		if !ok {
			return nil, fmt.Errorf("field %q is not allowed", cond.Field)
		}
		if !slices.Contains(field.Ops, cond.Op) {
			return nil, fmt.Errorf("operator %q is not allowed for field %q", cond.Op, cond.Field)
		}
		if err := checkValue(field.Kind, cond); err != nil {
			return nil, fmt.Errorf("field %q: %w", cond.Field, err)
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

func newEnv(fields map[string]Field) (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(fields))
	for name, f := range fields {
		typ := cel.StringType
		if f.Kind == KindTimestamp {
			typ = cel.TimestampType
		}
		opts = append(opts, cel.Variable(name, typ))
	}
	return cel.NewEnv(opts...)
}

// flattenAnd collects the operands of nested && calls.
func flattenAnd(expr *exprpb.Expr, out []*exprpb.Expr) ([]*exprpb.Expr, error) {
	if expr == nil {
		return nil, errors.New("empty expression")
	}
	call := expr.GetCallExpr()
	if call == nil {
		return append(out, expr), nil
	}
	switch call.Function {
	case "_&&_":
		var err error
		for _, arg := range call.Args {
			if out, err = flattenAnd(arg, out); err != nil {
				return nil, err
			}
		}
		return out, nil
	case "_||_", "_?_:_", "!_":
		return nil, fmt.Errorf("operator %q is not supported; only AND is allowed", call.Function)
	default:
		return append(out, expr), nil
	}
}

var binaryOps = map[string]Op{
	"_==_": OpEQ,
	"_>=_": OpGTE,
	"_<=_": OpLTE,
}

func toCondition(expr *exprpb.Expr) (Condition, error) {
	call := expr.GetCallExpr()
	if call == nil {
		return Condition{}, errors.New("expected a comparison")
	}

	var (
		op            Op
		ident, valueE *exprpb.Expr
	)
	switch fn := call.Function; {
	case binaryOps[fn] != "":
		if call.Target != nil || len(call.Args) != 2 {
			return Condition{}, fmt.Errorf("%s expects two operands", binaryOps[fn])
		}
		op, ident, valueE = binaryOps[fn], call.Args[0], call.Args[1]
	case fn == "@in" || fn == "_in_":
		if len(call.Args) != 2 {
			return Condition{}, errors.New("in expects two operands")
		}
		op, ident, valueE = OpIN, call.Args[0], call.Args[1]
	case fn == "startsWith":
		if call.Target == nil || len(call.Args) != 1 {
			return Condition{}, errors.New("startsWith must be called on a field with one argument")
		}
		op, ident, valueE = OpSW, call.Target, call.Args[0]
	default:
		return Condition{}, fmt.Errorf("function %q is not supported", fn)
	}

	name := ident.GetIdentExpr().GetName()
	if name == "" {
		return Condition{}, errors.New("left-hand side must be a field name")
	}
	value, err := literal(valueE)
	if err != nil {
		return Condition{}, err
	}
	return Condition{Field: name, Op: op, Value: value}, nil
}

func literal(expr *exprpb.Expr) (any, error) {
	if c := expr.GetConstExpr(); c != nil {
		switch c.ConstantKind.(type) {
		case *exprpb.Constant_StringValue:
			return c.GetStringValue(), nil
		case *exprpb.Constant_Int64Value, *exprpb.Constant_Uint64Value, *exprpb.Constant_DoubleValue:
			return nil, errors.New("expected a string literal, got a number")
		default:
			return nil, fmt.Errorf("literal %T is not supported", c.ConstantKind)
		}
	}

	if list := expr.GetListExpr(); list != nil {
		values := make([]string, 0, len(list.GetElements()))
		for i, elem := range list.GetElements() {
			s := elem.GetConstExpr().GetStringValue()
			if _, ok := elem.GetConstExpr().GetConstantKind().(*exprpb.Constant_StringValue); !ok {
				return nil, fmt.Errorf("list element %d must be a string literal", i)
			}
			values = append(values, s)
		}
		return values, nil
	}

	if call := expr.GetCallExpr(); call != nil && call.Function == "timestamp" {
		if call.Target != nil || len(call.Args) != 1 {
			return nil, errors.New("timestamp() expects one string argument")
		}
		raw := call.Args[0].GetConstExpr().GetStringValue()
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("timestamp %q is not RFC3339", raw)
		}
		return t, nil
	}

	return nil, errors.New("right-hand side must be a literal, a list of literals or timestamp()")
}

func checkValue(kind Kind, c Condition) error {
	switch kind {
	case KindString:
		if c.Op == OpIN {
			list, ok := c.Value.([]string)
			if !ok {
				return errors.New("expected a list of strings")
			}
			if len(list) == 0 {
				return errors.New("list must not be empty")
			}
			if slices.Contains(list, "") {
				return errors.New("list must not contain empty strings")
			}
			return nil
		}
		if _, ok := c.Value.(string); !ok {
			return errors.New("expected a string literal")
		}
	case KindTimestamp:
		if _, ok := c.Value.(time.Time); !ok {
			return errors.New("expected a timestamp() literal")
		}
	}
	return nil
}
