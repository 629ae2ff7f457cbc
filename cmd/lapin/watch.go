package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"lapin/config"
)

// Editors often write a file in several steps; events closer together
// than this trigger a single run.
const settleDelay = 100 * time.Millisecond

// watchFile runs filename, then runs it again with a fresh interpreter
// every time it is saved, until the watcher fails.
func watchFile(filename string, cfg *config.Config, logger *slog.Logger) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors that save by rename replace the inode.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	runFile(filename, cfg, logger, os.Stdin, os.Stdout)
	fmt.Printf("👀 Surveillance de %s (Ctrl+C pour arrêter)\n", filename)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevant(ev, abs) {
				continue
			}
			logger.Debug("modification détectée", "fichier", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(settleDelay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err

		case <-fire:
			fmt.Println()
			runFile(filename, cfg, logger, os.Stdin, os.Stdout)
		}
	}
}

func isRelevant(ev fsnotify.Event, target string) bool {
	if filepath.Clean(ev.Name) != target {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
