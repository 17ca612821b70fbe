package parser

import "github.com/deepnoodle-ai/chainexpr/internal/token"

// Operator precedence levels, from lowest to highest binding power.
const (
	_ int = iota
	LOWEST
	ASSIGN      // =
	TERNARY     // ? :
	COND        // && ||
	EQUALS      // == !=
	LESSGREATER // > or <
	SUM         // + -
	PRODUCT     // * /
	POWER       // **
	MOD         // %
	PREFIX      // -x or !x
	CALL        // func(x)
	INDEX       // list[i] or obj.attr
	OPTCHAIN    // obj?.attr
)

// precedences assigns a precedence level to each operator token. Tokens not
// listed here have LOWEST precedence and terminate expression parsing.
var precedences = map[token.Type]int{
	token.ASSIGN:       ASSIGN,
	token.QUESTION:     TERNARY,
	token.AND:          COND,
	token.OR:           COND,
	token.NULLISH:      COND,
	token.EQ:           EQUALS,
	token.NOT_EQ:       EQUALS,
	token.LT:           LESSGREATER,
	token.LT_EQUALS:    LESSGREATER,
	token.GT:           LESSGREATER,
	token.GT_EQUALS:    LESSGREATER,
	token.PLUS:         SUM,
	token.MINUS:        SUM,
	token.SLASH:        PRODUCT,
	token.ASTERISK:     PRODUCT,
	token.POW:          POWER,
	token.MOD:          MOD,
	token.LPAREN:       CALL,
	token.TEMPLATE:     CALL,
	token.PERIOD:       INDEX,
	token.LBRACKET:     INDEX,
	token.QUESTION_DOT: OPTCHAIN,
}
