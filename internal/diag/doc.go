// Package diag defines the diagnostic model shared by all front-end stages.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, the conditional compiler, the import resolver and the checks.
//   - Offer light-weight utilities (Reporter, Bag) that let stages emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Package diag does not perform any IO. Rendering lives in internal/diagfmt,
// collection per compilation lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier with a stable string form (LEX/SYN/CMP/IO/IMP).
//   - Category – Syntax, Compiler, Filesystem or Import; derived from Code.
//   - Message and Hint – what went wrong and how to fix it.
//   - Token – the offending token; its File and Line are the position.
//   - Notes – optional secondary tokens/messages.
//
// # Two tiers
//
// Recoverable problems go through a Reporter and processing continues.
// Fatal problems are returned as *FatalError; the driver records the wrapped
// Diagnostic in the Bag and stops the compilation.
//
// Stages construct a ReportBuilder (ReportError/ReportWarning), chain
// WithHint/WithNote, and finish with Emit or Fatal.
package diag
