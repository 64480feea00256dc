// Package lexer splits procsim assembly text into tokens.
//
// Each position of the source is matched against an ordered table of
// token rules. The longest match wins, and the earliest rule wins ties.
// Characters that no rule matches become single-character Unknown tokens,
// so lexing never fails.
package lexer
