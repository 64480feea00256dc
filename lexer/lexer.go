package lexer

import (
	"log"
	"slices"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru"
)

const (
	LEXER_CACHE_SIZE = 64 // Number of tokenized sources remembered.
)

// Lexer is a longest-match tokenizer.
type Lexer struct {
	Verbose bool // If set, logs every token produced.

	source      string
	offset      int
	definitions []Definition
	space       []rune
	cache       *lru.ARCCache
}

// NewLexer creates a lexer with the default rules and whitespace.
func NewLexer() (lx *Lexer) {
	cache, _ := lru.NewARC(LEXER_CACHE_SIZE)

	lx = &Lexer{
		definitions: DefaultDefinitions(),
		space:       slices.Clone(DefaultSpace),
		cache:       cache,
	}

	return
}

// Source returns the text being tokenized.
func (lx *Lexer) Source() string {
	return lx.source
}

// SetSource sets the text to tokenize, and rewinds the cursor.
func (lx *Lexer) SetSource(source string) {
	lx.source = source
	lx.offset = 0
}

// Definitions returns a copy of the token rules.
func (lx *Lexer) Definitions() []Definition {
	return slices.Clone(lx.definitions)
}

// SetDefinitions replaces the token rules. Rule order decides ties.
func (lx *Lexer) SetDefinitions(definitions []Definition) (err error) {
	if definitions == nil {
		err = ErrInvalidArgument
		return
	}

	for _, def := range definitions {
		if def.re == nil {
			err = &ErrPattern{Pattern: def.Pattern, Err: ErrInvalidArgument}
			return
		}
	}

	lx.definitions = slices.Clone(definitions)
	lx.cache.Purge()

	return
}

// Space returns a copy of the skipped characters.
func (lx *Lexer) Space() []rune {
	return slices.Clone(lx.space)
}

// SetSpace replaces the set of skipped characters.
func (lx *Lexer) SetSpace(space []rune) (err error) {
	if space == nil {
		err = ErrInvalidArgument
		return
	}

	lx.space = slices.Clone(space)
	lx.cache.Purge()

	return
}

// Parse tokenizes the whole source, from the start.
func (lx *Lexer) Parse() (tokens []Token) {
	lx.offset = 0

	if cached, ok := lx.cache.Get(lx.source); ok {
		tokens = slices.Clone(cached.([]Token))
		lx.offset = len(lx.source)
		if lx.Verbose {
			log.Printf("lexer: cached, %d tokens", len(tokens))
		}
		return
	}

	tokens = []Token{}
	for lx.inBounds() {
		lx.skipSpace()

		if !lx.inBounds() {
			break
		}

		token, ok := lx.longest()
		if !ok {
			_, size := utf8.DecodeRuneInString(lx.source[lx.offset:])
			token = Token{Kind: KIND_UNKNOWN, Text: lx.source[lx.offset : lx.offset+size]}
		}
		lx.offset += len(token.Text)

		if lx.Verbose {
			log.Printf("lexer: %v", token)
		}

		tokens = append(tokens, token)
	}

	lx.cache.Add(lx.source, slices.Clone(tokens))

	return
}

// Cached reports if the tokens of source are remembered.
func (lx *Lexer) Cached(source string) bool {
	return lx.cache.Contains(source)
}

func (lx *Lexer) inBounds() bool {
	return lx.offset < len(lx.source)
}

func (lx *Lexer) skipSpace() {
	for lx.inBounds() {
		r, size := utf8.DecodeRuneInString(lx.source[lx.offset:])
		if !slices.Contains(lx.space, r) {
			return
		}
		lx.offset += size
	}
}

// longest finds the longest rule match at the cursor. The first rule
// wins among equally long matches.
func (lx *Lexer) longest() (token Token, ok bool) {
	text := lx.source[lx.offset:]

	best := -1
	for n := range lx.definitions {
		def := &lx.definitions[n]
		length := def.match(text)
		if length > best {
			best = length
			token = Token{Kind: def.Kind, Text: text[:length]}
			ok = true
		}
	}

	return
}
