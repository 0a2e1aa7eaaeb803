package interpreter

import (
	"fmt"
	"io"
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"plc/environment"
	"plc/scope"
)

// registerBuiltins binds the three builtins spec.md §4.4 pre-registers
// in the root interpreter scope, writing print's output to out. The
// handles carry no declared parameter/return types since nothing in
// the interpreter consults a builtin's static type — only its arity,
// which scope.Scope keys functions on.
func registerBuiltins(root *scope.Scope, out io.Writer) {
	builtin := func(name string, arity int, body func(args []environment.Value) (environment.Value, error)) {
		f := &environment.Function{
			SourceName: name,
			TargetName: name,
			ParamTypes: make([]environment.Type, arity),
			Body:       body,
		}
		_ = root.DefineFunction(name, f)
	}

	builtin("print", 1, func(args []environment.Value) (environment.Value, error) {
		fmt.Fprintln(out, args[0].String())
		return environment.Null, nil
	})

	builtin("logarithm", 1, func(args []environment.Value) (environment.Value, error) {
		d := args[0].Dec
		f, _ := d.Float64()
		if f <= 0 {
			return environment.Null, newError(0, "logarithm requires a positive decimal, got %s", d.String())
		}
		return environment.NewDecimal(decimal.NewFromFloat(math.Log(f))), nil
	})

	builtin("converter", 2, func(args []environment.Value) (environment.Value, error) {
		n := args[0].Int
		base := args[1].Int
		if !base.IsInt64() || base.Int64() < 2 || base.Int64() > 36 {
			return environment.Null, newError(0, "converter base must be between 2 and 36, got %s", base.String())
		}
		b := base.Int64()
		return environment.NewString(new(big.Int).Set(n).Text(int(b))), nil
	})
}
