package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"hl2/internal/cst"
	"hl2/internal/lexer"
	"hl2/internal/parser"
	"hl2/internal/token"
)

// readSource reads a whole file into memory.
func readSource(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("file `%s` not found", filename)
	case errors.Is(err, fs.ErrPermission):
		return "", fmt.Errorf("no read permissions for `%s`", filename)
	default:
		return "", fmt.Errorf("cannot read `%s`: %w", filename, err)
	}
}

// lex runs the lexer and logs how it went.
func (a *app) lex(source, filename string) ([]token.Token, error) {
	start := time.Now()
	tokens, err := lexer.Lex(source, filename)
	if err != nil {
		a.log.Debug("lex failed", "file", filename, "err", err)
		return nil, err
	}
	a.log.Debug("lexed", "file", filename, "tokens", len(tokens), "elapsed", time.Since(start))
	return tokens, nil
}

// analyze lexes and parses source.
func (a *app) analyze(source, filename string) (*cst.Node, error) {
	tokens, err := a.lex(source, filename)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tree, err := parser.Parse(tokens, source, a.cfg.ParserOptions()...)
	if err != nil {
		a.log.Debug("parse failed", "file", filename, "err", err)
		return nil, err
	}
	a.log.Debug("parsed", "file", filename, "statements", len(tree.Children), "elapsed", time.Since(start))
	return tree, nil
}
