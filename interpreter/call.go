package interpreter

// Call invokes a user function, or a built-in when no user function has
// that name.
func (i *Interpreter) Call(name string, args []Value) (Value, error) {
	if fn, ok := i.funcs[name]; ok {
		return i.callUser(fn, args)
	}
	if b, ok := i.builtins[name]; ok {
		return i.callBuiltin(b, args)
	}
	return Absent(), errorf(ErrUndefined, "Fonction '%s' non définie", name)
}

// callUser runs fn in a scope holding only its parameters. The caller's
// scope, line and file are back in place when it returns, error or not.
func (i *Interpreter) callUser(fn *Function, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return Absent(), errorf(ErrArity, "Nombre d'arguments incorrect pour '%s': %d attendu(s), %d reçu(s)",
			fn.Name, len(fn.Params), len(args))
	}

	local := NewScope()
	for idx, p := range fn.Params {
		local.Set(p, args[idx])
	}

	savedScope, savedLine, savedFile := i.scope, i.current, i.filename
	f := &frame{name: fn.Name}

	i.scope = local
	i.filename = fn.File
	i.frames = append(i.frames, f)
	i.log.Debug("appel", "fonction", fn.Name, "profondeur", len(i.frames))

	defer func() {
		i.frames = i.frames[:len(i.frames)-1]
		i.scope, i.current, i.filename = savedScope, savedLine, savedFile
		i.log.Debug("retour", "fonction", fn.Name, "valeur", f.last.String())
	}()

	if err := i.runLines(fn.Body); err != nil {
		return Absent(), err
	}
	return f.last, nil
}

func (i *Interpreter) callBuiltin(b builtin, args []Value) (Value, error) {
	if len(args) < b.min || (b.max >= 0 && len(args) > b.max) {
		return Absent(), errorf(ErrArity, "Nombre d'arguments incorrect pour '%s'", b.name)
	}
	return b.fn(i, args)
}
