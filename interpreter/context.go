package interpreter

func (i *Interpreter) Filename() string { return i.filename }

// CallStack returns the active user calls, innermost first.
func (i *Interpreter) CallStack() []string {
	out := make([]string, 0, len(i.frames))
	for idx := len(i.frames) - 1; idx >= 0; idx-- {
		out = append(out, i.frames[idx].name)
	}
	return out
}

// Reset forgets every variable, function and include record.
func (i *Interpreter) Reset() {
	i.scope = NewScope()
	i.funcs = map[string]*Function{}
	i.included = map[string]int{}
	i.out = []string{}
}
