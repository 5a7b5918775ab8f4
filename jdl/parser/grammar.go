package parser

var (
	optionKeywords = concat(ExpandCategory(TokenUnaryOption), ExpandCategory(TokenBinaryOption))

	// Tried in this order at the top level.
	topLevelStarts = concat(
		[]TokenKind{TokenComment, TokenAt, TokenEntity, TokenRelationship, TokenEnum, TokenApplication, TokenDeployment},
		optionKeywords,
		[]TokenKind{TokenName},
	)
	// Constants are not a re-sync target: NAME would stop recovery inside
	// every nested block.
	topLevelSync = topLevelStarts[:len(topLevelStarts)-1]

	fieldStarts            = []TokenKind{TokenComment, TokenAt, TokenName}
	validationStarts       = []TokenKind{TokenRequired, TokenUnique, TokenMinMaxKeyword, TokenPattern}
	relationshipBodyStarts = []TokenKind{TokenAt, TokenComment, TokenName}
	enumPropStarts         = []TokenKind{TokenComment, TokenName}
	applicationStarts      = concat([]TokenKind{TokenConfig, TokenEntities}, optionKeywords)
	configStarts           = []TokenKind{TokenComment, TokenConfigKey}
	deploymentStarts       = []TokenKind{TokenComment, TokenDeploymentKey}
	listItemStarts         = []TokenKind{TokenName, TokenInteger, TokenString}

	fieldFollow = concat(validationStarts, []TokenKind{TokenComment, TokenComma, TokenRBrace, TokenAt})
)

func (p *Parser) parseProg() *Node {
	node := p.startNode(KindProg)
	pop := p.pushSync(topLevelSync)
	defer pop()

	for {
		progress := p.mustProgress()
		child, ok := p.parseTopLevel()
		if !ok {
			if p.atEOF() {
				break
			}
			p.report(topLevelStarts, p.peek())
			p.advance()
			p.skipTo(topLevelStarts)
			if !progress() {
				break
			}
			continue
		}
		node.AddChild(child)
		if child.Recovered {
			p.skipTo(topLevelStarts)
		}
		if !progress() {
			break
		}
	}
	return p.finishNode(node)
}

// parseTopLevel dispatches on the current token in the order of
// topLevelStarts. It reports false when no declaration starts here.
func (p *Parser) parseTopLevel() (*Node, bool) {
	if p.check(TokenComment) {
		switch {
		case p.la(1, TokenEntity, TokenAt):
			return p.parseEntityDeclaration(), true
		case p.la(1, TokenEnum):
			return p.parseEnumDeclaration(), true
		}
		node := p.startNode(KindToken)
		tok := p.advance()
		node.Token = &tok
		return p.finishNode(node), true
	}
	switch {
	case p.check(TokenAt), p.check(TokenEntity):
		return p.parseEntityDeclaration(), true
	case p.check(TokenRelationship):
		return p.parseRelationDeclaration(), true
	case p.check(TokenEnum):
		return p.parseEnumDeclaration(), true
	case p.check(TokenApplication):
		return p.parseApplicationDeclaration(), true
	case p.check(TokenDeployment):
		return p.parseDeploymentDeclaration(), true
	}
	for _, kind := range optionKeywords {
		// An option keyword followed by "=" declares a constant.
		if p.check(kind) && !p.la(1, TokenEquals) {
			if kind.Is(TokenUnaryOption) {
				return p.parseUnaryOptionDeclaration(), true
			}
			return p.parseBinaryOptionDeclaration(), true
		}
	}
	if p.check(TokenName) {
		return p.parseConstantDeclaration(), true
	}
	return nil, false
}

func (p *Parser) parseConstantDeclaration() *Node {
	node := p.startNode(KindConstantDeclaration)
	if !p.expect(node, TokenName) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenEquals, TokenInteger, TokenDecimal) {
		return p.abandon(node)
	}
	if !p.expectOneOf(node, []TokenKind{TokenInteger, TokenDecimal}) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

// parseAnnotations adds annotation declarations to node and reports whether
// all of them completed.
func (p *Parser) parseAnnotations(node *Node) bool {
	for p.check(TokenAt) {
		child := p.parseAnnotationDeclaration()
		node.AddChild(child)
		if child.Recovered {
			return false
		}
	}
	return true
}

func (p *Parser) parseEntityDeclaration() *Node {
	node := p.startNode(KindEntityDeclaration)
	if p.check(TokenComment) {
		p.consume(node)
	}
	if !p.parseAnnotations(node) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenEntity) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenName, TokenLParen, TokenLBrace) {
		return p.abandon(node)
	}
	if p.check(TokenLParen) {
		child := p.parseEntityTableNameDeclaration()
		node.AddChild(child)
		if child.Recovered {
			return p.abandon(node)
		}
	}
	if p.check(TokenLBrace) {
		child := p.parseEntityBody()
		node.AddChild(child)
		if child.Recovered {
			return p.abandon(node)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationDeclaration() *Node {
	node := p.startNode(KindAnnotationDeclaration)
	if !p.expect(node, TokenAt) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenName, TokenLParen, TokenAt, TokenEntity) {
		return p.abandon(node)
	}
	if p.check(TokenLParen) {
		p.consume(node)
		if !p.expectOneOf(node, []TokenKind{TokenName, TokenString, TokenInteger}, TokenRParen) {
			return p.abandon(node)
		}
		if !p.expect(node, TokenRParen, TokenAt, TokenEntity, TokenName) {
			return p.abandon(node)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseEntityTableNameDeclaration() *Node {
	node := p.startNode(KindEntityTableNameDeclaration)
	if !p.expect(node, TokenLParen) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenName, TokenRParen) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenRParen, TokenLBrace) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseEntityBody() *Node {
	node := p.startNode(KindEntityBody)
	if !p.expect(node, TokenLBrace) {
		return p.abandon(node)
	}
	p.parseItems(node, fieldStarts, TokenRBrace, TokenComma, (*Parser).parseFieldDeclaration)
	if !p.expect(node, TokenRBrace) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseFieldDeclaration() *Node {
	node := p.startNode(KindFieldDeclaration)
	if p.check(TokenComment) {
		p.consume(node)
	}
	if !p.parseAnnotations(node) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenName) {
		return p.abandon(node)
	}
	if p.peekIs(TokenMinMaxKeyword, TokenPattern) && p.peekN(1).Kind == TokenLParen {
		p.report([]TokenKind{TokenName}, p.peek())
		node.addToken(Token{Kind: TokenName, Inserted: true})
	} else if !p.expect(node, TokenName, fieldFollow...) {
		return p.abandon(node)
	}
	for p.atValidation() {
		child := p.parseValidation()
		node.AddChild(child)
		if child.Recovered {
			return p.abandon(node)
		}
	}
	if p.check(TokenComment) && p.onPreviousLine() {
		p.consume(node)
	}
	return p.finishNode(node)
}

// onPreviousLine reports whether the current token starts on the line the
// previous token ended on.
func (p *Parser) onPreviousLine() bool {
	if p.pos == 0 || p.atEOF() {
		return true
	}
	return p.tokens[p.pos-1].Span.End.Line == p.peek().Span.Start.Line
}

// atValidation reports whether a validation starts at the current token.
// The min/max keywords and pattern are also names, so they start a
// validation only when followed by "(" or the end of input.
func (p *Parser) atValidation() bool {
	if p.la(0, TokenRequired, TokenUnique) {
		return true
	}
	if !p.la(0, TokenMinMaxKeyword, TokenPattern) {
		return false
	}
	return p.peekN(1).Kind == TokenLParen || p.pos+1 >= p.eof
}

func (p *Parser) parseValidation() *Node {
	node := p.startNode(KindValidation)
	var child *Node
	switch {
	case p.check(TokenRequired), p.check(TokenUnique):
		p.consume(node)
		return p.finishNode(node)
	case p.check(TokenMinMaxKeyword):
		child = p.parseMinMaxValidation()
	case p.check(TokenPattern):
		child = p.parsePattern()
	default:
		p.expectOneOf(node, validationStarts)
		return p.abandon(node)
	}
	node.AddChild(child)
	if child.Recovered {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseMinMaxValidation() *Node {
	node := p.startNode(KindMinMaxValidation)
	if !p.expect(node, TokenMinMaxKeyword) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenLParen, TokenInteger, TokenDecimal, TokenName) {
		return p.abandon(node)
	}
	if !p.expectOneOf(node, []TokenKind{TokenInteger, TokenDecimal, TokenName}, TokenRParen) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenRParen, fieldFollow...) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parsePattern() *Node {
	node := p.startNode(KindPattern)
	if !p.expect(node, TokenPattern) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenLParen, TokenRegex) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenRegex, TokenRParen) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenRParen, fieldFollow...) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseRelationDeclaration() *Node {
	node := p.startNode(KindRelationDeclaration)
	if !p.expect(node, TokenRelationship) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenRelationshipType, TokenLBrace) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenLBrace, relationshipBodyStarts...) {
		return p.abandon(node)
	}
	if p.la(0, relationshipBodyStarts...) {
		p.parseSeparated(node, relationshipBodyStarts, TokenRBrace, TokenComma, (*Parser).parseRelationshipBody)
	}
	if !p.expect(node, TokenRBrace) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseRelationshipBody() *Node {
	node := p.startNode(KindRelationshipBody)
	if !p.parseAnnotations(node) {
		return p.abandon(node)
	}
	from := p.parseRelationshipSide()
	node.AddChild(from)
	if from.Recovered {
		return p.abandon(node)
	}
	if !p.expect(node, TokenTo, TokenAt, TokenComment, TokenName) {
		return p.abandon(node)
	}
	if !p.parseAnnotations(node) {
		return p.abandon(node)
	}
	to := p.parseRelationshipSide()
	node.AddChild(to)
	if to.Recovered {
		return p.abandon(node)
	}
	if p.check(TokenWith) {
		p.consume(node)
		if !p.expect(node, TokenName) {
			return p.abandon(node)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseRelationshipSide() *Node {
	node := p.startNode(KindRelationshipSide)
	if p.check(TokenComment) {
		p.consume(node)
	}
	if !p.expect(node, TokenName) {
		return p.abandon(node)
	}
	if !p.check(TokenLBrace) {
		return p.finishNode(node)
	}
	p.consume(node)
	if !p.expect(node, TokenName, TokenLParen, TokenRequired, TokenRBrace) {
		return p.abandon(node)
	}
	if p.check(TokenLParen) {
		p.consume(node)
		if !p.expect(node, TokenName, TokenRParen) {
			return p.abandon(node)
		}
		if !p.expect(node, TokenRParen, TokenRequired, TokenRBrace) {
			return p.abandon(node)
		}
	}
	if p.check(TokenRequired) {
		p.consume(node)
	}
	if !p.expect(node, TokenRBrace, TokenTo, TokenWith, TokenComma) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseEnumDeclaration() *Node {
	node := p.startNode(KindEnumDeclaration)
	if p.check(TokenComment) {
		p.consume(node)
	}
	if !p.expect(node, TokenEnum) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenName, TokenLBrace) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenLBrace, enumPropStarts...) {
		return p.abandon(node)
	}
	if p.la(0, enumPropStarts...) {
		node.AddChild(p.parseEnumPropList())
	}
	if !p.expect(node, TokenRBrace) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseEnumPropList() *Node {
	node := p.startNode(KindEnumPropList)
	p.parseSeparated(node, enumPropStarts, TokenRBrace, TokenComma, (*Parser).parseEnumProp)
	return p.finishNode(node)
}

func (p *Parser) parseEnumProp() *Node {
	node := p.startNode(KindEnumProp)
	if p.check(TokenComment) {
		p.consume(node)
	}
	if !p.expect(node, TokenName) {
		return p.abandon(node)
	}
	if p.check(TokenLParen) {
		p.consume(node)
		if !p.expectOneOf(node, []TokenKind{TokenName, TokenString}, TokenRParen) {
			return p.abandon(node)
		}
		if !p.expect(node, TokenRParen, TokenComma, TokenRBrace) {
			return p.abandon(node)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseUnaryOptionDeclaration() *Node {
	node := p.startNode(KindUnaryOptionDeclaration)
	if !p.expect(node, TokenUnaryOption) {
		return p.abandon(node)
	}
	return p.parseOptionTail(node, false)
}

func (p *Parser) parseBinaryOptionDeclaration() *Node {
	node := p.startNode(KindBinaryOptionDeclaration)
	if !p.expect(node, TokenBinaryOption) {
		return p.abandon(node)
	}
	return p.parseOptionTail(node, true)
}

// parseOptionTail parses entityList [ WITH NAME ] [ exclusion ].
func (p *Parser) parseOptionTail(node *Node, withValue bool) *Node {
	list := p.parseEntityList()
	node.AddChild(list)
	if list.Recovered {
		return p.abandon(node)
	}
	if withValue {
		if !p.expect(node, TokenWith, TokenName) {
			return p.abandon(node)
		}
		if !p.expect(node, TokenName, TokenExcept) {
			return p.abandon(node)
		}
	}
	if p.check(TokenExcept) {
		child := p.parseExclusion()
		node.AddChild(child)
		if child.Recovered {
			return p.abandon(node)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseEntityList() *Node {
	node := p.startNode(KindEntityList)
	if !p.expectOneOf(node, []TokenKind{TokenStar, TokenAll, TokenName}) {
		return p.abandon(node)
	}
	last := node.Children[len(node.Children)-1].Token
	if last.Kind.Is(TokenName) {
		return p.parseNameTail(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseExclusion() *Node {
	node := p.startNode(KindExclusion)
	if !p.expect(node, TokenExcept) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenName) {
		return p.abandon(node)
	}
	return p.parseNameTail(node)
}

// parseNameTail parses { "," NAME }.
func (p *Parser) parseNameTail(node *Node) *Node {
	for p.check(TokenComma) {
		p.consume(node)
		if !p.expect(node, TokenName) {
			return p.abandon(node)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseApplicationDeclaration() *Node {
	node := p.startNode(KindApplicationDeclaration)
	if !p.expect(node, TokenApplication) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenLBrace, applicationStarts...) {
		return p.abandon(node)
	}
	p.parseItems(node, applicationStarts, TokenRBrace, TokenEOF, (*Parser).parseApplicationItem)
	if !p.expect(node, TokenRBrace) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseApplicationItem() *Node {
	switch {
	case p.peekIs(TokenConfig):
		return p.parseApplicationSubConfig()
	case p.peekIs(TokenEntities):
		return p.parseApplicationSubEntities()
	case p.peekIs(TokenUnaryOption):
		return p.parseUnaryOptionDeclaration()
	default:
		return p.parseBinaryOptionDeclaration()
	}
}

func (p *Parser) parseApplicationSubConfig() *Node {
	node := p.startNode(KindApplicationSubConfig)
	if !p.expect(node, TokenConfig) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenLBrace, configStarts...) {
		return p.abandon(node)
	}
	p.parseItems(node, configStarts, TokenRBrace, TokenEOF, func(p *Parser) *Node {
		if p.peekIs(TokenComment) {
			return p.parseComment()
		}
		return p.parseConfigProperty()
	})
	if !p.expect(node, TokenRBrace, applicationStarts...) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseComment() *Node {
	node := p.startNode(KindToken)
	tok := p.advance()
	node.Token = &tok
	return p.finishNode(node)
}

func (p *Parser) parseConfigProperty() *Node {
	node := p.startNode(KindConfigProperty)
	if !p.expect(node, TokenConfigKey) {
		return p.abandon(node)
	}
	return p.parsePropertyValue(node)
}

func (p *Parser) parseDeploymentProperty() *Node {
	node := p.startNode(KindDeploymentProperty)
	if !p.expect(node, TokenDeploymentKey) {
		return p.abandon(node)
	}
	return p.parsePropertyValue(node)
}

func (p *Parser) parsePropertyValue(node *Node) *Node {
	value := p.parseOptionValue()
	node.AddChild(value)
	if value.Recovered {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseApplicationSubEntities() *Node {
	node := p.startNode(KindApplicationSubEntities)
	if !p.expect(node, TokenEntities) {
		return p.abandon(node)
	}
	return p.parseOptionTail(node, false)
}

func (p *Parser) parseDeploymentDeclaration() *Node {
	node := p.startNode(KindDeploymentDeclaration)
	if !p.expect(node, TokenDeployment) {
		return p.abandon(node)
	}
	if !p.expect(node, TokenLBrace, deploymentStarts...) {
		return p.abandon(node)
	}
	p.parseItems(node, deploymentStarts, TokenRBrace, TokenEOF, func(p *Parser) *Node {
		if p.peekIs(TokenComment) {
			return p.parseComment()
		}
		return p.parseDeploymentProperty()
	})
	if !p.expect(node, TokenRBrace) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseOptionValue() *Node {
	node := p.startNode(KindOptionValue)
	var child *Node
	switch {
	case p.check(TokenName):
		child = p.parseQualifiedName()
	case p.check(TokenLBracket):
		child = p.parseList()
	case p.check(TokenInteger), p.check(TokenString), p.check(TokenBoolean):
		p.consume(node)
		return p.finishNode(node)
	default:
		p.expectOneOf(node, []TokenKind{TokenName, TokenLBracket, TokenInteger, TokenString, TokenBoolean})
		return p.abandon(node)
	}
	node.AddChild(child)
	if child.Recovered {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)
	if !p.expect(node, TokenName) {
		return p.abandon(node)
	}
	for p.check(TokenDot) {
		p.consume(node)
		if !p.expect(node, TokenName) {
			return p.abandon(node)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseList() *Node {
	node := p.startNode(KindList)
	if !p.expect(node, TokenLBracket) {
		return p.abandon(node)
	}
	if p.la(0, listItemStarts...) {
		p.parseSeparated(node, listItemStarts, TokenRBracket, TokenComma, (*Parser).parseListItem)
	}
	if !p.expect(node, TokenRBracket) {
		return p.abandon(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseListItem() *Node {
	node := p.startNode(KindListItem)
	switch {
	case p.check(TokenName):
		child := p.parseQualifiedName()
		node.AddChild(child)
		if child.Recovered {
			return p.abandon(node)
		}
	default:
		if !p.expectOneOf(node, []TokenKind{TokenInteger, TokenString}) {
			return p.abandon(node)
		}
	}
	return p.finishNode(node)
}
