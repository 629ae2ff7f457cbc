package interpreter

import (
	"os"
	"path/filepath"
	"strings"

	"lapin/ast"
)

const sourceExt = ".lapin"

func (i *Interpreter) fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

// includeCandidates lists where inclure looks for raw, in order: next to
// the including file, in each configured directory, then raw itself.
// Names without an extension are also tried with ".lapin".
func (i *Interpreter) includeCandidates(raw string, includerFilename string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	withExt := raw
	needsExt := filepath.Ext(raw) == ""
	if needsExt {
		withExt = raw + sourceExt
	}

	if filepath.IsAbs(raw) {
		cands := []string{filepath.Clean(raw)}
		if needsExt {
			cands = append(cands, filepath.Clean(withExt))
		}
		return cands
	}

	roots := []string{}
	if includerFilename != "" {
		roots = append(roots, filepath.Dir(includerFilename))
	}
	roots = append(roots, i.includeDirs...)
	roots = append(roots, ".")

	cands := []string{}
	for _, root := range roots {
		cands = append(cands, filepath.Clean(filepath.Join(root, raw)))
		if needsExt {
			cands = append(cands, filepath.Clean(filepath.Join(root, withExt)))
		}
	}

	seen := map[string]bool{}
	out := []string{}
	for _, c := range cands {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func (i *Interpreter) resolveIncludePath(raw string, includerFilename string) (string, []string) {
	cands := i.includeCandidates(raw, includerFilename)
	for _, c := range cands {
		if i.fileExists(c) {
			return c, cands
		}
	}
	if len(cands) > 0 {
		return cands[0], cands
	}
	return raw, cands
}

func (i *Interpreter) circularIncludeMessage(target string) string {
	var b strings.Builder
	b.WriteString("Inclusion circulaire détectée:\n")
	for _, p := range i.includeStack {
		b.WriteString("  ")
		b.WriteString(p)
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(target)
	return b.String()
}

// include runs another source file in the current state: its functions
// and variables stay defined afterwards. A file is re-run every time it
// is included.
func (i *Interpreter) include(raw string) (Value, error) {
	resolved, tried := i.resolveIncludePath(raw, i.filename)

	for _, p := range i.includeStack {
		if p == resolved {
			return Absent(), errorf(ErrIO, "%s", i.circularIncludeMessage(resolved))
		}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		msg := "Erreur inclusion fichier '" + raw + "': " + err.Error()
		if len(tried) > 1 {
			msg += "\nEssayé:\n  " + strings.Join(tried, "\n  ")
		}
		return Absent(), errorf(ErrIO, "%s", msg)
	}

	i.log.Debug("inclusion", "fichier", resolved)

	prevFile := i.filename
	i.filename = resolved
	i.includeStack = append(i.includeStack, resolved)
	defer func() {
		i.includeStack = i.includeStack[:len(i.includeStack)-1]
		i.filename = prevFile
	}()

	if err := i.runLines(ast.SplitLines(string(data))); err != nil {
		return Absent(), err
	}
	i.included[resolved]++

	return Text("Fichier '" + raw + "' inclus avec succès"), nil
}
