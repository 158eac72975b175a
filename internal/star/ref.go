package star

import (
	"errors"
	"fmt"
	"go/token"
	"reflect"
	"regexp"
	"runtime"
	"strings"
)

// Named is implemented by entities that carry their own export name.
type Named interface {
	Name() string
}

type refKind int

const (
	refLiteral refKind = iota
	refEntity
)

// Ref is an item to export: either a literal name or an entity whose name is
// read at resolution time.
type Ref struct {
	kind    refKind
	literal string
	entity  any
}

// Literal returns a Ref that resolves to name verbatim.
func Literal(name string) Ref {
	return Ref{kind: refLiteral, literal: name}
}

// Entity returns a Ref that resolves to v's name.
func Entity(v any) Ref {
	return Ref{kind: refEntity, entity: v}
}

// RefOf classifies v: a Ref is returned as-is, a string becomes a Literal
// and anything else becomes an Entity.
func RefOf(v any) Ref {
	switch val := v.(type) {
	case Ref:
		return val
	case string:
		return Literal(val)
	default:
		return Entity(v)
	}
}

// Resolve returns the name the Ref stands for.
func (r Ref) Resolve() (string, error) {
	if r.kind == refLiteral {
		if r.literal == "" {
			return "", errors.New("empty name")
		}
		return r.literal, nil
	}
	return entityName(r.entity)
}

// String describes the Ref for error messages.
func (r Ref) String() string {
	if r.kind == refLiteral {
		return fmt.Sprintf("%q", r.literal)
	}
	return fmt.Sprintf("%T", r.entity)
}

func entityName(v any) (string, error) {
	var name string

	if isNil(v) {
		return "", errors.New("nil entity")
	}

	switch val := v.(type) {
	case reflect.Type:
		name = val.Name()
		if name == "" {
			return "", fmt.Errorf("type %s is unnamed", val)
		}
	case Named:
		name = val.Name()
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Func {
			return "", fmt.Errorf("%T has no name", v)
		}
		var err error
		if name, err = funcName(rv); err != nil {
			return "", err
		}
	}

	if name == "" {
		return "", errors.New("empty name")
	}
	return name, nil
}

// isNil reports whether v is nil or a typed nil that cannot be asked for a
// name without dereferencing it.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// closureName matches the compiler's names for function literals.
var closureName = regexp.MustCompile(`^func\d+$`)

// funcName extracts the short symbol name of a top-level function.
// runtime names look like "example.com/pkg.Func", with dots in the last path
// element escaped as %2e, so a top-level function has exactly one dot after
// the last slash. Generic instantiations ("pkg.Func[...]") resolve to Func.
// Closures ("pkg.Func.func1"), method expressions ("pkg.T.M") and method
// values ("pkg.(*T).M-fm") are rejected.
func funcName(rv reflect.Value) (string, error) {
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return "", errors.New("function has no symbol")
	}
	full := fn.Name()

	short := full[strings.LastIndex(full, "/")+1:]
	short = strings.TrimSuffix(short, "[...]")
	if strings.ContainsAny(short, "()[]") || strings.HasSuffix(short, "-fm") || strings.Count(short, ".") != 1 {
		return "", fmt.Errorf("function %s is not a top-level declaration", full)
	}

	name := short[strings.Index(short, ".")+1:]
	if !token.IsIdentifier(name) || closureName.MatchString(name) {
		return "", fmt.Errorf("function %s is not a top-level declaration", full)
	}
	return name, nil
}
