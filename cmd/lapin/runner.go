package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"lapin/config"
	"lapin/interpreter"
)

var rule = strings.Repeat("=", 50)

// runFile executes one file with a fresh interpreter, streaming its output
// between the banner and the footer. It reports whether the program ran
// without error.
func runFile(filename string, cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) bool {
	src, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(out, "❌ Fichier '%s' introuvable\n", filename)
		} else {
			fmt.Fprintf(out, "❌ Erreur: %v\n", err)
		}
		return false
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "🐇 Exécution de %s...\n", filename)
		fmt.Fprintln(out, rule)
	}

	opts := append(interpreterOptions(cfg, logger),
		interpreter.WithInput(in),
		interpreter.WithOutput(out),
		interpreter.WithStreaming(true),
	)
	session := interpreter.New(opts...)
	res := session.Execute(filename, string(src))
	reportFailure(res, cfg, out)

	if !cfg.Quiet {
		fmt.Fprintln(out, rule)
		if res.OK {
			fmt.Fprintln(out, "✅ Programme exécuté avec succès")
		} else {
			fmt.Fprintln(out, "❌ Programme terminé avec des erreurs")
		}
	}
	return res.OK
}

// reportFailure prints the error entry of a failed, streamed unit. Results
// before it were already written as they were produced.
func reportFailure(res interpreter.Result, cfg *config.Config, out io.Writer) {
	if res.OK || len(res.Output) == 0 {
		return
	}
	fmt.Fprintln(out, res.Output[len(res.Output)-1])

	var re *interpreter.RuntimeError
	if cfg.Debug && errors.As(res.Err, &re) {
		fmt.Fprintln(os.Stderr, re.Detail())
	}
}
