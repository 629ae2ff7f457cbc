package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"lapin/config"
	"lapin/interpreter"
	"lapin/lexer"
)

// exitWords end the session when typed alone on a line.
var exitWords = map[string]bool{"quitter": true, "exit": true, "quit": true}

func runREPL(cfg *config.Config, logger *slog.Logger) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 cfg.Prompt,
		HistoryFile:            cfg.HistoryFile,
		InterruptPrompt:        "^C",
		EOFPrompt:              "quitter",
		HistorySearchFold:      true,
		DisableAutoSaveHistory: false,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	out := rl.Stdout()
	if !cfg.Quiet {
		fmt.Fprintln(out, "🐇 LAPIN - Mode Interactif")
		fmt.Fprintln(out, "Tapez 'quitter' pour sortir, :aide pour les commandes.")
		fmt.Fprintln(out, "Blocs sur plusieurs lignes (si/tant que/repeter/pour chaque/fonction ... fin).")
		fmt.Fprintln(out, "Mode collage: :coller, puis terminer par '.' ou :fin")
		fmt.Fprintln(out, strings.Repeat("-", 30))
	}

	// One interpreter for the whole session: variables and functions persist.
	opts := append(interpreterOptions(cfg, logger),
		interpreter.WithInput(&lineReader{rl: rl}),
		interpreter.WithOutput(out),
		interpreter.WithStreaming(true),
	)
	r := &repl{
		cfg:     cfg,
		logger:  logger,
		session: interpreter.New(opts...),
		out:     out,
	}

	for {
		if r.pasteMode {
			rl.SetPrompt("coller> ")
		} else if r.depth > 0 {
			rl.SetPrompt("...> ")
		} else {
			rl.SetPrompt(cfg.Prompt)
		}

		line, err := rl.Readline()

		// Ctrl+C
		if err == readline.ErrInterrupt {
			if r.pasteMode {
				r.pasteMode = false
				r.pasteBuf.Reset()
				fmt.Fprintln(out, "^C (collage annulé)")
				continue
			}
			if r.buf.Len() > 0 || r.depth > 0 {
				r.buf.Reset()
				r.depth = 0
				fmt.Fprintln(out, "^C (tampon vidé)")
				continue
			}
			fmt.Fprintln(out, "\nAu revoir ! 👋")
			return nil
		}

		// Ctrl+D
		if err == io.EOF {
			fmt.Fprintln(out, "\nAu revoir ! 👋")
			return nil
		}
		if err != nil {
			return err
		}

		if r.handleLine(line) {
			return nil
		}
	}
}

type repl struct {
	cfg     *config.Config
	logger  *slog.Logger
	session *interpreter.Interpreter
	out     io.Writer

	buf   strings.Builder
	depth int
	chunk int

	pasteMode bool
	pasteBuf  strings.Builder
}

// handleLine feeds one input line and reports whether the session is over.
func (r *repl) handleLine(line string) bool {
	trim := strings.TrimSpace(line)

	if r.pasteMode {
		switch trim {
		case ".", ":fin":
			src := r.pasteBuf.String()
			r.pasteBuf.Reset()
			r.pasteMode = false
			if strings.TrimSpace(src) == "" {
				fmt.Fprintln(r.out, "(tampon de collage vide)")
				return false
			}
			r.run(src)
		case ":annuler":
			r.pasteBuf.Reset()
			r.pasteMode = false
			fmt.Fprintln(r.out, "(collage annulé)")
		default:
			r.pasteBuf.WriteString(line)
			r.pasteBuf.WriteString("\n")
		}
		return false
	}

	if r.depth == 0 && r.buf.Len() == 0 {
		if exitWords[strings.ToLower(trim)] {
			fmt.Fprintln(r.out, "Au revoir ! 👋")
			return true
		}
		if strings.HasPrefix(trim, ":") {
			quit, err := r.command(trim)
			if err != nil {
				fmt.Fprintf(r.out, "❌ %v\n", err)
			}
			return quit
		}
	}

	r.buf.WriteString(line)
	r.buf.WriteString("\n")
	r.depth = updateDepth(r.depth, trim)
	if r.depth > 0 {
		return false
	}

	src := r.buf.String()
	r.buf.Reset()
	if strings.TrimSpace(src) != "" {
		r.run(src)
	}
	return false
}

// run executes one REPL entry. Errors are reported and the session goes on.
func (r *repl) run(src string) {
	r.chunk++
	res := r.session.Execute(replChunkFilename(r.chunk), src)
	reportFailure(res, r.cfg, r.out)
}

func replChunkFilename(chunk int) string {
	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	return filepath.Join(cwd, fmt.Sprintf("<interactif:%d>", chunk))
}

func (r *repl) command(cmd string) (quit bool, err error) {
	switch {
	case cmd == ":q" || cmd == ":quitter" || cmd == ":quit":
		fmt.Fprintln(r.out, "Au revoir ! 👋")
		return true, nil

	case cmd == ":aide" || cmd == ":help":
		fmt.Fprintln(r.out, "Commandes:")
		fmt.Fprintln(r.out, "  :aide               Afficher cette aide")
		fmt.Fprintln(r.out, "  :quitter            Quitter (ou tapez quitter)")
		fmt.Fprintln(r.out, "  :pwd                Afficher le dossier courant")
		fmt.Fprintln(r.out, "  :cd <dossier>       Changer de dossier")
		fmt.Fprintln(r.out, "  :charger <fichier>  Exécuter un fichier .lapin (nouvel interpréteur)")
		fmt.Fprintln(r.out, "  :reset              Vider le tampon multi-lignes")
		fmt.Fprintln(r.out, "  :oublier            Oublier variables et fonctions de la session")
		fmt.Fprintln(r.out, "  :effacer            Effacer l'écran")
		fmt.Fprintln(r.out, "  :coller             Mode collage (terminer par '.' ou :fin)")
		fmt.Fprintln(r.out, "  :variables          Variables de la session")
		fmt.Fprintln(r.out, "  :fonctions          Fonctions définies")
		fmt.Fprintln(r.out, "  :integrees          Fonctions intégrées")
		fmt.Fprintln(r.out, "  :inclusions         Fichiers inclus")
		return false, nil

	case cmd == ":pwd":
		cwd, err := os.Getwd()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(r.out, cwd)
		return false, nil

	case strings.HasPrefix(cmd, ":cd"):
		dir := strings.TrimSpace(strings.TrimPrefix(cmd, ":cd"))
		if dir == "" {
			return false, fmt.Errorf("usage: :cd <dossier>")
		}
		return false, os.Chdir(dir)

	case strings.HasPrefix(cmd, ":charger"):
		path := strings.TrimSpace(strings.TrimPrefix(cmd, ":charger"))
		if path == "" {
			return false, fmt.Errorf("usage: :charger <fichier.lapin>")
		}
		runFile(path, r.cfg, r.logger, os.Stdin, r.out)
		return false, nil

	case cmd == ":reset":
		r.buf.Reset()
		r.depth = 0
		fmt.Fprintln(r.out, "(tampon vidé)")
		return false, nil

	case cmd == ":oublier":
		r.session.Reset()
		fmt.Fprintln(r.out, "(session réinitialisée)")
		return false, nil

	case cmd == ":effacer":
		fmt.Fprint(r.out, "\033[2J\033[H")
		return false, nil

	case cmd == ":coller":
		r.buf.Reset()
		r.depth = 0
		r.pasteBuf.Reset()
		r.pasteMode = true
		fmt.Fprintln(r.out, "(mode collage: terminer par '.' ou :fin, annuler avec :annuler)")
		return false, nil

	case cmd == ":variables":
		names := r.session.VariableNames()
		if len(names) == 0 {
			fmt.Fprintln(r.out, "(aucune variable)")
			return false, nil
		}
		vars := r.session.Variables()
		for _, n := range names {
			fmt.Fprintf(r.out, "%s = %s\n", n, vars[n])
		}
		return false, nil

	case cmd == ":fonctions":
		names := r.session.FuncNames()
		if len(names) == 0 {
			fmt.Fprintln(r.out, "(aucune fonction)")
			return false, nil
		}
		for _, n := range names {
			fn, _ := r.session.Function(n)
			fmt.Fprintf(r.out, "%s(%s)\n", n, strings.Join(fn.Params, ", "))
		}
		return false, nil

	case cmd == ":integrees":
		fmt.Fprintln(r.out, strings.Join(r.session.BuiltinNames(), ", "))
		return false, nil

	case cmd == ":inclusions":
		loading, loaded := r.session.IncludesSnapshot()
		if len(loading) == 0 && len(loaded) == 0 {
			fmt.Fprintln(r.out, "(aucune inclusion)")
			return false, nil
		}
		if len(loading) > 0 {
			fmt.Fprintln(r.out, "en cours:")
			for _, p := range loading {
				fmt.Fprintln(r.out, "  "+p)
			}
		}
		if len(loaded) > 0 {
			fmt.Fprintln(r.out, "inclus:")
			for _, p := range loaded {
				fmt.Fprintln(r.out, "  "+p)
			}
		}
		return false, nil

	default:
		fmt.Fprintln(r.out, "Commande inconnue. Essayez :aide")
		return false, nil
	}
}

// updateDepth tracks how many blocks the buffered input leaves open.
func updateDepth(depth int, trimmed string) int {
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return depth
	}
	if lexer.IsBlockOpener(trimmed) {
		return depth + 1
	}
	if trimmed == lexer.KwEnd {
		if depth > 0 {
			return depth - 1
		}
		return 0
	}
	return depth
}

// lineReader lets lire and lire_nombre read through the line editor that
// owns the terminal.
type lineReader struct {
	rl      *readline.Instance
	pending []byte
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		prev := l.rl.Config.Prompt
		l.rl.SetPrompt("")
		line, err := l.rl.Readline()
		l.rl.SetPrompt(prev)
		if err == readline.ErrInterrupt {
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}
		l.pending = []byte(line + "\n")
	}
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
