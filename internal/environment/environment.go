// Package environment implements Aurora's lexically scoped environment: a
// stack of frames plus the side channels the evaluator uses for return
// propagation, closure capture detection, and active-function tracking
// (spec §4.4).
package environment

import (
	"fmt"

	"github.com/aurora-lang/aurora/internal/value"
)

// frame is one layer of the scope stack: a mapping from identifier text to
// a mutable binding cell.
type frame struct {
	cells map[string]*value.Cell
}

func newFrame() *frame {
	return &frame{cells: make(map[string]*value.Cell, 8)}
}

// UndefinedNameError reports a reference to a name not found on the active
// scope stack (spec §3's "Every Expression::Variable ... must name a
// binding reachable").
type UndefinedNameError struct {
	Name string
}

func (e *UndefinedNameError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// Env is a stack of frames plus the evaluator's side channels. It is owned
// by a single evaluator instance and is not safe for concurrent use (spec
// §5).
type Env struct {
	frames []*frame

	returnSet   bool
	returnValue value.Value

	// pending holds captures to inject into the *next* pushed frame — used
	// so a Function's captured cells land in its call frame the moment
	// it is created (spec §4.4, §4.5).
	pending []value.Capture

	// funcKinds tracks which kind of callable body is currently executing,
	// innermost last, so `return` outside any function is a hard error and
	// a constructor's return value can be ignored/redirected (spec §4.6,
	// §4.7).
	funcKinds []value.FuncKind
}

// New creates an environment with a single (global) frame.
func New() *Env {
	e := &Env{}
	e.frames = append(e.frames, newFrame())
	return e
}

// Define writes into the topmost frame, overwriting any existing binding of
// the same name there (spec §4.4).
func (e *Env) Define(name string, v value.Value) {
	top := e.frames[len(e.frames)-1]
	top.cells[name] = &value.Cell{Value: v}
}

// Get searches frames top-down and returns the first binding found.
func (e *Env) Get(name string) (value.Value, error) {
	cell, ok := e.findCell(name)
	if !ok {
		return nil, &UndefinedNameError{Name: name}
	}
	return cell.Value, nil
}

// Assign searches frames top-down and writes into the frame that first
// contains name.
func (e *Env) Assign(name string, v value.Value) error {
	cell, ok := e.findCell(name)
	if !ok {
		return &UndefinedNameError{Name: name}
	}
	cell.Value = v
	return nil
}

func (e *Env) findCell(name string) (*value.Cell, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if cell, ok := e.frames[i].cells[name]; ok {
			return cell, true
		}
	}
	return nil, false
}

// WouldCapture reports whether name resolves to a binding that is visible
// but NOT in the topmost frame (spec §4.4). Capture-scanning a function
// body first pushes a temporary frame holding that function's own
// parameters (spec §4.5 step 1), so by the time this is called the
// topmost frame is that function's own scope: anything found below it —
// including a global in frame 0 — is a free variable the function must
// capture as a shared cell.
func (e *Env) WouldCapture(name string) bool {
	top := e.frames[len(e.frames)-1]
	if _, ok := top.cells[name]; ok {
		return false
	}
	for i := len(e.frames) - 2; i >= 0; i-- {
		if _, ok := e.frames[i].cells[name]; ok {
			return true
		}
	}
	return false
}

// CellFor returns the binding cell for name so a Function's captures can
// alias it directly (spec §4.5's "captured binding as a shared-ownership
// cell"). ok is false if name is not found.
func (e *Env) CellFor(name string) (*value.Cell, bool) {
	return e.findCell(name)
}

// Inject queues a (name, cell) pair to be installed, by reference, into the
// next frame pushed. Used to carry a Function's captures (and, for bound
// methods, `this`) into its call frame.
func (e *Env) Inject(captures ...value.Capture) {
	e.pending = append(e.pending, captures...)
}

// PushFrame opens a new scope, draining any pending injections into it.
func (e *Env) PushFrame() {
	f := newFrame()
	for _, c := range e.pending {
		f.cells[c.Name] = c.Cell
	}
	e.pending = nil
	e.frames = append(e.frames, f)
}

// PopFrame closes the innermost scope. Any injections queued but never
// consumed by a PushFrame are discarded too.
func (e *Env) PopFrame() {
	e.pending = nil
	e.frames = e.frames[:len(e.frames)-1]
}

// MarkReturn sets the return signal.
func (e *Env) MarkReturn(v value.Value) {
	e.returnSet = true
	e.returnValue = v
}

// HasReturn reports whether a return is currently pending unwind.
func (e *Env) HasReturn() bool {
	return e.returnSet
}

// TakeReturn consumes and clears the return signal, yielding the value
// most recently passed to MarkReturn (or Nil{} if none was set, which only
// happens for a function body that fell off the end).
func (e *Env) TakeReturn() value.Value {
	v := e.returnValue
	if v == nil {
		v = value.Nil{}
	}
	e.returnSet = false
	e.returnValue = nil
	return v
}

// PushFuncKind records that a call of the given kind is now executing.
func (e *Env) PushFuncKind(k value.FuncKind) {
	e.funcKinds = append(e.funcKinds, k)
}

// PopFuncKind unwinds the innermost active-call marker.
func (e *Env) PopFuncKind() {
	e.funcKinds = e.funcKinds[:len(e.funcKinds)-1]
}

// InFunction reports whether any call is currently executing, i.e. whether
// a `return` statement is legal right now (spec §4.6).
func (e *Env) InFunction() bool {
	return len(e.funcKinds) > 0
}

// CurrentFuncKind returns the kind of the innermost active call. The
// second return value is false at top level.
func (e *Env) CurrentFuncKind() (value.FuncKind, bool) {
	if len(e.funcKinds) == 0 {
		return 0, false
	}
	return e.funcKinds[len(e.funcKinds)-1], true
}
