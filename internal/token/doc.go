// Package token defines lexical token kinds and token streams for the tcab
// compiler front end.
// Invariants:
//   - Token.Kind is decided once, by Classify, when the token is created.
//     Stages dispatch on Kind instead of comparing text over and over.
//   - Tokens are values. A stage that rewrites text builds a new token with
//     WithText, which re-derives the kind.
//   - Equality is structural on Text only; File and Line are provenance.
//   - Newline and tab characters survive lexing as the Newline and Tab
//     sentinels so later stages can reason about line structure.
//   - Spaces never become tokens.
package token
