// Package language normalizes the language codes reported alongside charset
// guesses and renders them for display.
//
// Parsing and display names come from golang.org/x/text/language; a small
// word table covers the English names some caption tools write instead of
// codes.
package language
