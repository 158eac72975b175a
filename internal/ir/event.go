package ir

import "fmt"

// Op names a successful operation on an export list.
type Op string

const (
	OpBind       Op = "bind"
	OpSign       Op = "sign"
	OpInclude    Op = "include"
	OpIncludeAll Op = "include_all"
	OpEmpty      Op = "empty"
	OpFreeze     Op = "freeze"
)

// ValidateOp checks that op is one of the known operations.
func ValidateOp(op string) error {
	switch Op(op) {
	case OpBind, OpSign, OpInclude, OpIncludeAll, OpEmpty, OpFreeze:
		return nil
	default:
		return fmt.Errorf("invalid op %q", op)
	}
}

// Event records one committed mutation (or bind) of an export list.
//
// Names depends on Op: the adopted list for bind, the appended names for
// sign/include/include_all, the discarded names for empty and the frozen
// names for freeze.
type Event struct {
	Seq       int64    `json:"seq"`
	Binding   string   `json:"binding"`
	Namespace string   `json:"namespace"`
	Op        Op       `json:"op"`
	Names     []string `json:"names"`
}
