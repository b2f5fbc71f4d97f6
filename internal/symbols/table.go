package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"aslc/internal/types"
)

// GlobalScopeName names the outermost program scope.
const GlobalScopeName = "$global$"

// EntryPointName is the required entry point identifier.
const EntryPointName = "main"

// Table owns every scope of a compilation unit and the stack that drives
// name lookup. Lookup resolves top-down through the stack; the first
// match wins.
type Table struct {
	types  *types.Interner
	scopes []Scope
	stack  []ScopeID

	// currentFn is the signature of the function being checked; set by
	// the type-check pass before descending into a body.
	currentFn types.TypeID
}

// NewTable builds an empty table bound to a type interner.
func NewTable(in *types.Interner) *Table {
	return &Table{types: in}
}

// PushNewScope allocates a scope, pushes it and returns its ID.
func (t *Table) PushNewScope(name string) ScopeID {
	lenScopes, err := safecast.Conv[int32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scope count overflow: %w", err))
	}
	id := ScopeID(lenScopes)
	t.scopes = append(t.scopes, newScope(name))
	t.stack = append(t.stack, id)
	return id
}

// PushScope re-enters a scope built by an earlier pass.
func (t *Table) PushScope(id ScopeID) {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		panic(fmt.Errorf("symbols: push of unknown scope %d", id))
	}
	t.stack = append(t.stack, id)
}

// PopScope removes the top of the stack. Push and pop must pair on every
// exit path of a pass.
func (t *Table) PopScope() {
	if len(t.stack) == 0 {
		panic("symbols: pop on empty scope stack")
	}
	t.stack = t.stack[:len(t.stack)-1]
}

// Depth returns the current stack depth.
func (t *Table) Depth() int {
	return len(t.stack)
}

func (t *Table) top() *Scope {
	if len(t.stack) == 0 {
		panic("symbols: no current scope")
	}
	return &t.scopes[t.stack[len(t.stack)-1]]
}

// Scope returns a scope by ID for read-only walks.
func (t *Table) Scope(id ScopeID) *Scope {
	return &t.scopes[id]
}

// FindInCurrentScope reports whether name is declared in the top scope.
func (t *Table) FindInCurrentScope(name string) bool {
	_, ok := t.top().lookup(name)
	return ok
}

// FindInStack returns the innermost scope declaring name, or NoScopeID.
func (t *Table) FindInStack(name string) ScopeID {
	for i := len(t.stack) - 1; i >= 0; i-- {
		id := t.stack[i]
		if _, ok := t.scopes[id].lookup(name); ok {
			return id
		}
	}
	return NoScopeID
}

// AddLocalVar declares a local variable in the top scope.
func (t *Table) AddLocalVar(name string, ty types.TypeID) {
	t.top().add(name, Symbol{Kind: KindLocalVar, Type: ty})
}

// AddParameter declares a parameter in the top scope.
func (t *Table) AddParameter(name string, ty types.TypeID) {
	t.top().add(name, Symbol{Kind: KindParameter, Type: ty})
}

// AddFunction installs a function signature in the top scope.
func (t *Table) AddFunction(name string, ty types.TypeID) {
	t.top().add(name, Symbol{Kind: KindFunction, Type: ty})
}

func (t *Table) lookupStack(name string) (Symbol, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[t.stack[i]].lookup(name); ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// GetType returns the type of name, resolving through the stack.
// Unknown names get the error type.
func (t *Table) GetType(name string) types.TypeID {
	if sym, ok := t.lookupStack(name); ok {
		return sym.Type
	}
	return t.types.Builtins().Error
}

// IsFunctionClass reports whether name resolves to a function symbol.
func (t *Table) IsFunctionClass(name string) bool {
	sym, ok := t.lookupStack(name)
	return ok && sym.Kind == KindFunction
}

// IsParameterClass reports whether name resolves to a parameter symbol.
func (t *Table) IsParameterClass(name string) bool {
	sym, ok := t.lookupStack(name)
	return ok && sym.Kind == KindParameter
}

// IsLocalVarClass reports whether name resolves to a local variable.
func (t *Table) IsLocalVarClass(name string) bool {
	sym, ok := t.lookupStack(name)
	return ok && sym.Kind == KindLocalVar
}

// SetCurrentFunction records the signature of the function under check.
func (t *Table) SetCurrentFunction(ty types.TypeID) {
	t.currentFn = ty
}

// CurrentFunction returns the signature set by SetCurrentFunction.
func (t *Table) CurrentFunction() types.TypeID {
	return t.currentFn
}

// NoMainProperlyDeclared reports true unless the global scope declares a
// function `main` with no parameters and void return.
func (t *Table) NoMainProperlyDeclared() bool {
	if len(t.scopes) == 0 {
		return true
	}
	sym, ok := t.scopes[0].lookup(EntryPointName)
	if !ok || sym.Kind != KindFunction {
		return true
	}
	if !t.types.IsFunction(sym.Type) {
		return true
	}
	if t.types.NumParams(sym.Type) != 0 {
		return true
	}
	return !t.types.IsVoidReturning(sym.Type)
}
