// Package profile describes one observed game as data: which process to
// watch, which scene-controller classes count as gameplay, how the loading
// signal is bound, what starts a run, and the per-mode level tables that map
// a completed level to its split toggle.
//
// Profiles are authored in CUE and compiled through the CUE Go API, so a new
// game (or a new story branch of an existing game) is a new document, not a
// code fork. The engine itself is game-agnostic; everything game-shaped
// lives here.
package profile
