// Package charset turns caption file bytes of unknown encoding into text.
//
// Resolution runs in three steps: a byte-order-mark sniff, an optional
// statistical hint expanded through a declarative encoding-family table, and
// a score-decode ladder that trial-decodes a bounded prefix with a fixed list
// of code pages and keeps the candidate whose output looks most like caption
// text. A lossy UTF-8 decode backs the ladder so Resolve never fails.
package charset
