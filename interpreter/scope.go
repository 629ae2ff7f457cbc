package interpreter

// Scope maps identifiers to values and remembers insertion order, which
// display substitution depends on. Rebinding a name keeps its position.
type Scope struct {
	names []string
	vals  map[string]Value
}

func NewScope() *Scope {
	return &Scope{vals: map[string]Value{}}
}

func (s *Scope) Get(name string) (Value, bool) {
	v, ok := s.vals[name]
	return v, ok
}

func (s *Scope) Set(name string, v Value) {
	if _, ok := s.vals[name]; !ok {
		s.names = append(s.names, name)
	}
	s.vals[name] = v
}

func (s *Scope) Delete(name string) {
	if _, ok := s.vals[name]; !ok {
		return
	}
	delete(s.vals, name)
	for idx, n := range s.names {
		if n == name {
			s.names = append(s.names[:idx:idx], s.names[idx+1:]...)
			break
		}
	}
}

// Names returns the bound names in insertion order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Scope) Len() int { return len(s.names) }

