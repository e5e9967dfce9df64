// Package textutil provides small text helpers shared by the caption stages
// and the CLI.
//
// The primary use cases are:
//   - Stripping inline caption markup such as <i> or {\an8} tags
//   - Normalizing multi-line caption text (trimmed lines, no blank lines)
//   - Rune-safe truncation with an ellipsis marker
//   - Sanitizing filenames and path segments for safe filesystem use
package textutil
