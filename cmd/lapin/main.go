package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"lapin/config"
	"lapin/interpreter"
)

const versionLine = "🐇 LAPIN v1.0.0 - Langage d'Apprentissage de la Programmation INtutive"

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lapin [options] [fichier.lapin]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Sans fichier, lance le mode interactif.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	debug := flag.Bool("debug", false, "trace chaque ligne exécutée sur stderr")
	configPath := flag.String("config", "", "fichier de configuration (défaut: ./lapin.yml puis ~/.lapin.yml)")
	watch := flag.Bool("surveiller", false, "réexécuter le fichier à chaque enregistrement")
	version := flag.Bool("version", false, "afficher la version")
	flag.Parse()

	if *version {
		fmt.Println(versionLine)
		return
	}

	cfg, err := config.Discover(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
	}

	logger := newLogger(cfg.Debug, os.Stderr)

	if flag.NArg() > 1 {
		usage()
		os.Exit(2)
	}

	if flag.NArg() == 0 {
		if err := runREPL(cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Erreur: %v\n", err)
			os.Exit(1)
		}
		return
	}

	filename := flag.Arg(0)
	if *watch {
		if err := watchFile(filename, cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Erreur: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !runFile(filename, cfg, logger, os.Stdin, os.Stdout) {
		os.Exit(1)
	}
}

// newLogger returns a debug-level text logger on w, or one that discards
// everything when tracing is off.
func newLogger(debug bool, w io.Writer) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func interpreterOptions(cfg *config.Config, logger *slog.Logger) []interpreter.Option {
	return []interpreter.Option{
		interpreter.WithLogger(logger),
		interpreter.WithIncludePaths(cfg.IncludePaths...),
		interpreter.WithMaxIterations(cfg.MaxIterations),
	}
}
