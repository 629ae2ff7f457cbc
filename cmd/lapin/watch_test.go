package main

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestIsRelevant(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "jeu.lapin")
	other := filepath.Join(dir, "autre.lapin")

	cases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: target, Op: fsnotify.Rename}, true},
		{"write and chmod", fsnotify.Event{Name: target, Op: fsnotify.Write | fsnotify.Chmod}, true},
		{"unclean path", fsnotify.Event{Name: dir + "/./jeu.lapin", Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: target, Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: other, Op: fsnotify.Write}, false},
		{"directory", fsnotify.Event{Name: dir, Op: fsnotify.Write}, false},
	}
	for _, tc := range cases {
		if got := isRelevant(tc.ev, target); got != tc.want {
			t.Errorf("%s: isRelevant(%v) = %v, want %v", tc.name, tc.ev, got, tc.want)
		}
	}
}
