// Package parser defines Parser, which parses a token sequence into a statement list using
// recursive descent with precedence climbing for expressions.
package parser

import (
	"strconv"

	"github.com/golox-lang/golox/ast"
	"github.com/golox-lang/golox/loxerr"
	"github.com/golox-lang/golox/token"
)

// parseError is panicked by the Parser's helpers to unwind to the nearest synchronize point. It's
// never a genuine Go error value that escapes the package; Parse recovers it.
type parseError struct{}

// Parser parses a token sequence into an AST using recursive descent.
type Parser struct {
	tokens []token.Token
	sink   *loxerr.Sink
	pos    int
}

// New constructs a Parser over tokens, reporting errors through sink. tokens must end with an EOF
// token, as produced by scanner.Scan.
func New(tokens []token.Token, sink *loxerr.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

// Parse parses a whole program and returns its statements. Parse errors are reported through the
// sink and recovered from via synchronize; the returned slice may omit statements that failed to
// parse but otherwise contains every statement that did.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt, ok := p.safeDeclaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func (p *Parser) safeDeclaration() (stmt ast.Stmt, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isParseError := r.(parseError); !isParseError {
				panic(r)
			}
			p.synchronize()
			ok = false
		}
	}()
	return p.declaration(), true
}

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.funDecl("function")
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() ast.Stmt {
	name := p.consume(token.Ident, "Expect class name.")
	p.consume(token.LeftBrace, "Expect '{' before class body.")
	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		methods = append(methods, p.funDecl("method"))
	}
	p.consume(token.RightBrace, "Expect '}' after class body.")
	return ast.NewClassStmt(name, methods)
}

func (p *Parser) funDecl(kind string) *ast.FunctionStmt {
	name := p.consume(token.Ident, "Expect "+kind+" name.")
	p.consume(token.LeftParen, "Expect '(' after "+kind+" name.")
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= 255 {
				p.errorAtCurrent("Can't have more than 255 parameters.")
			}
			params = append(params, p.consume(token.Ident, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after parameters.")
	p.consume(token.LeftBrace, "Expect '{' before "+kind+" body.")
	body := p.block()
	return ast.NewFunctionStmt(name, params, body)
}

func (p *Parser) varDecl() ast.Stmt {
	name := p.consume(token.Ident, "Expect variable name.")
	var initialiser ast.Expr
	if p.match(token.Assign) {
		initialiser = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	return ast.NewVarStmt(name, initialiser)
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		line := p.previous().Line
		return ast.NewBlockStmt(p.block(), line)
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; update) body` into
// `{ init; while (cond) { body; update; } }`. No dedicated for-loop AST node exists.
func (p *Parser) forStatement() ast.Stmt {
	line := p.previous().Line
	p.consume(token.LeftParen, "Expect '(' after 'for'.")

	var initialiser ast.Stmt
	switch {
	case p.match(token.Semicolon):
		// no initialiser
	case p.match(token.Var):
		initialiser = p.varDecl()
	default:
		initialiser = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after loop condition.")

	var update ast.Expr
	if !p.check(token.RightParen) {
		update = p.expression()
	}
	p.consume(token.RightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if update != nil {
		body = ast.NewBlockStmt([]ast.Stmt{body, ast.NewExpressionStmt(update)}, line)
	}
	if cond == nil {
		cond = ast.NewLiteralExpr(true, line)
	}
	body = ast.NewWhileStmt(cond, body, line)
	if initialiser != nil {
		body = ast.NewBlockStmt([]ast.Stmt{initialiser, body}, line)
	}
	return body
}

func (p *Parser) ifStatement() ast.Stmt {
	line := p.previous().Line
	p.consume(token.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after if condition.")
	then := p.statement()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.statement()
	}
	return ast.NewIfStmt(cond, then, els, line)
}

func (p *Parser) printStatement() ast.Stmt {
	line := p.previous().Line
	value := p.expression()
	p.consume(token.Semicolon, "Expect ';' after value.")
	return ast.NewPrintStmt(value, line)
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.consume(token.Semicolon, "Expect ';' after return value.")
	return ast.NewReturnStmt(keyword, value)
}

func (p *Parser) whileStatement() ast.Stmt {
	line := p.previous().Line
	p.consume(token.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RightParen, "Expect ')' after condition.")
	body := p.statement()
	return ast.NewWhileStmt(cond, body, line)
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if stmt, ok := p.safeDeclaration(); ok {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.Semicolon, "Expect ';' after expression.")
	return ast.NewExpressionStmt(expr)
}

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses the LHS as an expression first; if it's followed by '=', the LHS must be a
// VariableExpr (-> AssignExpr) or a GetExpr (-> SetExpr); otherwise the target is invalid.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Assign) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.VariableExpr:
			return ast.NewAssignExpr(e.Name, value)
		case *ast.GetExpr:
			return ast.NewSetExpr(e.Object, e.Name, value)
		default:
			p.sink.TokenError(equals, "Invalid assignment target")
			return expr
		}
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		op := p.previous()
		right := p.and()
		expr = ast.NewLogicalExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewLogicalExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	return p.binary(p.comparison, token.BangEqual, token.Equal)
}

func (p *Parser) comparison() ast.Expr {
	return p.binary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() ast.Expr {
	return p.binary(p.factor, token.Minus, token.Plus)
}

func (p *Parser) factor() ast.Expr {
	return p.binary(p.unary, token.Slash, token.Asterisk)
}

func (p *Parser) binary(next func() ast.Expr, types ...token.Type) ast.Expr {
	expr := next()
	for p.match(types...) {
		op := p.previous()
		right := next()
		expr = ast.NewBinaryExpr(expr, op, right)
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right := p.unary()
		return ast.NewUnaryExpr(op, right)
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Ident, "Expect property name after '.'.")
			expr = ast.NewGetExpr(expr, name)
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= 255 {
				p.errorAtCurrent("Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return ast.NewCallExpr(callee, paren, args)
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return ast.NewLiteralExpr(false, p.previous().Line)
	case p.match(token.True):
		return ast.NewLiteralExpr(true, p.previous().Line)
	case p.match(token.Nil):
		return ast.NewLiteralExpr(nil, p.previous().Line)
	case p.match(token.Number):
		tok := p.previous()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			panic("parser: number token with unparsable lexeme: " + tok.Lexeme)
		}
		return ast.NewLiteralExpr(value, tok.Line)
	case p.match(token.String):
		tok := p.previous()
		return ast.NewLiteralExpr(tok.Literal, tok.Line)
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Ident, "Expect superclass method name.")
		return ast.NewSuperExpr(keyword, method)
	case p.match(token.This):
		return ast.NewThisExpr(p.previous())
	case p.match(token.Ident):
		return ast.NewVariableExpr(p.previous())
	case p.match(token.LeftParen):
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return ast.NewGroupingExpr(expr)
	default:
		p.errorAtCurrent("Expect expression.")
		panic(parseError{})
	}
}

// synchronize discards tokens until it reaches what looks like a statement boundary: just past a
// ';', or the start of a keyword that begins a new declaration or statement.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) consume(t token.Type, msg string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAtCurrent(msg)
	panic(parseError{})
}

func (p *Parser) errorAtCurrent(msg string) {
	p.sink.TokenError(p.peek(), msg)
}
