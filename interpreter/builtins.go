package interpreter

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type builtin struct {
	name     string
	min, max int // max < 0 means variadic
	fn       func(i *Interpreter, args []Value) (Value, error)
}

func builtinTable() map[string]builtin {
	table := []builtin{
		{"afficher", 0, -1, biAfficher},
		{"ecrire", 0, -1, biEcrire},
		{"lire", 0, 0, biLire},
		{"lire_nombre", 0, 0, biLireNombre},

		{"longueur", 1, 1, biLongueur},
		{"liste", 0, -1, biListe},
		{"ajouter", 2, 2, biAjouter},
		{"enlever", 2, 2, biEnlever},
		{"obtenir", 2, 2, biObtenir},
		{"definir", 3, 3, biDefinir},

		{"nombre_aleatoire", 0, 2, biNombreAleatoire},
		{"attendre", 1, 1, biAttendre},
		{"maintenant", 0, 0, biMaintenant},
		{"date", 0, 0, biDate},

		{"texte_en_nombre", 1, 1, biTexteEnNombre},
		{"nombre_en_texte", 1, 1, biNombreEnTexte},
		{"majuscules", 1, 1, biMajuscules},
		{"minuscules", 1, 1, biMinuscules},

		{"arrondir", 1, 2, biArrondir},
		{"absolu", 1, 1, biAbsolu},
		{"racine", 1, 1, biRacine},
		{"puissance", 2, 2, biPuissance},

		{"est_nombre", 1, 1, func(_ *Interpreter, a []Value) (Value, error) { return Bool(a[0].IsNumber()), nil }},
		{"est_texte", 1, 1, func(_ *Interpreter, a []Value) (Value, error) { return Bool(a[0].Kind == ValText), nil }},
		{"est_liste", 1, 1, func(_ *Interpreter, a []Value) (Value, error) { return Bool(a[0].Kind == ValList), nil }},

		{"executer_fichier", 1, 1, biExecuterFichier},
	}

	m := make(map[string]builtin, len(table))
	for _, b := range table {
		m[b.name] = b
	}
	return m
}

func joinValues(args []Value) string {
	parts := make([]string, len(args))
	for idx, a := range args {
		parts[idx] = a.String()
	}
	return strings.Join(parts, " ")
}

// ---------- I/O ----------

// biAfficher is the call form afficher(...). It prints its arguments
// joined by spaces as soon as it runs, even inside a function body, and
// returns rien. Unlike the afficher statement, its text never becomes the
// enclosing function's value.
func biAfficher(i *Interpreter, args []Value) (Value, error) {
	i.emit(joinValues(args))
	return Absent(), nil
}

func biEcrire(i *Interpreter, args []Value) (Value, error) {
	return Absent(), i.write(joinValues(args))
}

func biLire(i *Interpreter, _ []Value) (Value, error) {
	line, err := i.readLine()
	if err != nil {
		return Absent(), err
	}
	return Text(line), nil
}

func biLireNombre(i *Interpreter, _ []Value) (Value, error) {
	return i.readNumber()
}

func biExecuterFichier(_ *Interpreter, args []Value) (Value, error) {
	data, err := os.ReadFile(args[0].String())
	if err != nil {
		return Text(""), nil
	}
	return Text(string(data)), nil
}

// ---------- Lists ----------

func listArg(name string, v Value) (*ListObject, error) {
	if v.Kind != ValList || v.List == nil {
		return nil, errorf(ErrNotAList, "%s: une liste est attendue, %s reçu", name, v.Kind)
	}
	return v.List, nil
}

func indexArg(name string, v Value) (int, error) {
	n, ok := v.integer()
	if !ok || v.Kind == ValBool {
		if v.Kind == ValFloat && v.Float == math.Trunc(v.Float) {
			return int(v.Float), nil
		}
		return 0, errorf(ErrType, "%s: un indice entier est attendu, %s reçu", name, v.Kind)
	}
	return int(n), nil
}

func biLongueur(_ *Interpreter, args []Value) (Value, error) {
	switch v := args[0]; v.Kind {
	case ValText:
		return Int(int64(utf8.RuneCountInString(v.Str))), nil
	case ValList:
		return Int(int64(len(v.elems()))), nil
	default:
		return Absent(), errorf(ErrType, "longueur: texte ou liste attendu, %s reçu", v.Kind)
	}
}

func biListe(_ *Interpreter, args []Value) (Value, error) {
	elems := make([]Value, len(args))
	copy(elems, args)
	return List(elems...), nil
}

// ajouter mutates the list in place and returns it.
func biAjouter(_ *Interpreter, args []Value) (Value, error) {
	l, err := listArg("ajouter", args[0])
	if err != nil {
		return Absent(), err
	}
	l.Elems = append(l.Elems, args[1])
	return args[0], nil
}

func biEnlever(_ *Interpreter, args []Value) (Value, error) {
	l, err := listArg("enlever", args[0])
	if err != nil {
		return Absent(), err
	}
	idx, err := indexArg("enlever", args[1])
	if err != nil {
		return Absent(), err
	}
	if idx < 0 || idx >= len(l.Elems) {
		return Absent(), nil
	}
	v := l.Elems[idx]
	l.Elems = append(l.Elems[:idx], l.Elems[idx+1:]...)
	return v, nil
}

func biObtenir(_ *Interpreter, args []Value) (Value, error) {
	l, err := listArg("obtenir", args[0])
	if err != nil {
		return Absent(), err
	}
	idx, err := indexArg("obtenir", args[1])
	if err != nil {
		return Absent(), err
	}
	if idx < 0 || idx >= len(l.Elems) {
		return Absent(), nil
	}
	return l.Elems[idx], nil
}

// definir ignores an out-of-range index and returns the list either way.
func biDefinir(_ *Interpreter, args []Value) (Value, error) {
	l, err := listArg("definir", args[0])
	if err != nil {
		return Absent(), err
	}
	idx, err := indexArg("definir", args[1])
	if err != nil {
		return Absent(), err
	}
	if idx >= 0 && idx < len(l.Elems) {
		l.Elems[idx] = args[2]
	}
	return args[0], nil
}

// ---------- Time & randomness ----------

// nombre_aleatoire() is 0 or 1; two integers give an inclusive integer
// range, anything else a uniform real.
func biNombreAleatoire(i *Interpreter, args []Value) (Value, error) {
	lo, hi := Int(0), Int(1)
	if len(args) > 0 {
		lo = args[0]
	}
	if len(args) > 1 {
		hi = args[1]
	}

	if lo.Kind == ValInt && hi.Kind == ValInt {
		if hi.Int < lo.Int {
			return Absent(), errorf(ErrType, "nombre_aleatoire: intervalle vide [%d, %d]", lo.Int, hi.Int)
		}
		span := uint64(hi.Int-lo.Int) + 1
		switch {
		case span == 0:
			return Int(int64(i.rng.Uint64())), nil
		case span <= math.MaxInt64:
			return Int(lo.Int + i.rng.Int63n(int64(span))), nil
		default:
			return Int(lo.Int + int64(i.rng.Uint64()%span)), nil
		}
	}

	lf, lok := lo.number()
	hf, hok := hi.number()
	if !lok || !hok {
		return Absent(), errorf(ErrType, "nombre_aleatoire: bornes numériques attendues")
	}
	return Float(lf + i.rng.Float64()*(hf-lf)), nil
}

func biAttendre(_ *Interpreter, args []Value) (Value, error) {
	s, ok := args[0].number()
	if !ok {
		return Absent(), errorf(ErrType, "attendre: nombre de secondes attendu, %s reçu", args[0].Kind)
	}
	if s > 0 {
		time.Sleep(time.Duration(s * float64(time.Second)))
	}
	return Absent(), nil
}

func biMaintenant(i *Interpreter, _ []Value) (Value, error) {
	return Text(i.now().Format("15:04:05")), nil
}

func biDate(i *Interpreter, _ []Value) (Value, error) {
	return Text(i.now().Format("02/01/2006")), nil
}

// ---------- Conversions ----------

// texte_en_nombre never fails: unparsable text gives 0.
func biTexteEnNombre(_ *Interpreter, args []Value) (Value, error) {
	v := args[0]
	switch v.Kind {
	case ValInt, ValFloat:
		return v, nil
	case ValText:
	default:
		return Int(0), nil
	}

	s := strings.TrimSpace(v.Str)
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f), nil
		}
		return Int(0), nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(n), nil
	}
	return Int(0), nil
}

func biNombreEnTexte(_ *Interpreter, args []Value) (Value, error) {
	return Text(args[0].String()), nil
}

func textArg(name string, v Value) (string, error) {
	if v.Kind != ValText {
		return "", errorf(ErrType, "%s: texte attendu, %s reçu", name, v.Kind)
	}
	return v.Str, nil
}

func biMajuscules(_ *Interpreter, args []Value) (Value, error) {
	s, err := textArg("majuscules", args[0])
	if err != nil {
		return Absent(), err
	}
	return Text(strings.ToUpper(s)), nil
}

func biMinuscules(_ *Interpreter, args []Value) (Value, error) {
	s, err := textArg("minuscules", args[0])
	if err != nil {
		return Absent(), err
	}
	return Text(strings.ToLower(s)), nil
}

// ---------- Maths ----------

func numberArg(name string, v Value) (float64, error) {
	if !v.IsNumber() && v.Kind != ValBool {
		return 0, errorf(ErrType, "%s: nombre attendu, %s reçu", name, v.Kind)
	}
	f, _ := v.number()
	return f, nil
}

// arrondir rounds half to even. Integers stay integers; reals stay reals,
// so arrondir(3.7) is 4.0.
func biArrondir(_ *Interpreter, args []Value) (Value, error) {
	d := int64(0)
	if len(args) > 1 {
		n, ok := args[1].integer()
		if !ok {
			return Absent(), errorf(ErrType, "arrondir: nombre de décimales entier attendu")
		}
		d = n
	}

	v := args[0]
	f, err := numberArg("arrondir", v)
	if err != nil {
		return Absent(), err
	}

	scale := math.Pow(10, float64(d))
	r := math.RoundToEven(f*scale) / scale
	if v.Kind == ValInt || v.Kind == ValBool {
		if d >= 0 {
			n, _ := v.integer()
			return Int(n), nil
		}
		return Int(int64(r)), nil
	}
	return Float(r), nil
}

func biAbsolu(_ *Interpreter, args []Value) (Value, error) {
	v := args[0]
	if n, ok := v.integer(); ok {
		if n < 0 {
			n = -n
		}
		return Int(n), nil
	}
	f, err := numberArg("absolu", v)
	if err != nil {
		return Absent(), err
	}
	return Float(math.Abs(f)), nil
}

// racine of a negative number is 0.
func biRacine(_ *Interpreter, args []Value) (Value, error) {
	f, err := numberArg("racine", args[0])
	if err != nil {
		return Absent(), err
	}
	if f < 0 {
		return Int(0), nil
	}
	return Float(math.Sqrt(f)), nil
}

func biPuissance(_ *Interpreter, args []Value) (Value, error) {
	return arith("^", args[0], args[1])
}
