package interpreter

import "sort"

// Variables returns a copy of the active scope.
func (i *Interpreter) Variables() map[string]Value {
	out := make(map[string]Value, i.scope.Len())
	for _, name := range i.scope.Names() {
		v, _ := i.scope.Get(name)
		out[name] = v
	}
	return out
}

// VariableNames returns the active scope's names in binding order.
func (i *Interpreter) VariableNames() []string { return i.scope.Names() }

// FuncNames returns sorted names of user-defined functions.
func (i *Interpreter) FuncNames() []string {
	names := make([]string, 0, len(i.funcs))
	for name := range i.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Function returns the user definition registered under name.
func (i *Interpreter) Function(name string) (*Function, bool) {
	fn, ok := i.funcs[name]
	return fn, ok
}

// BuiltinNames returns sorted names of the built-in functions.
func (i *Interpreter) BuiltinNames() []string {
	names := make([]string, 0, len(i.builtins))
	for name := range i.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IncludesSnapshot returns the files being run right now, outermost
// first, and the sorted set of files included so far.
func (i *Interpreter) IncludesSnapshot() (loading []string, loaded []string) {
	loading = append(loading, i.includeStack...)
	for path := range i.included {
		loaded = append(loaded, path)
	}
	sort.Strings(loaded)
	return loading, loaded
}
