package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedDocBlock     Code = 1004

	SynInfo Code = 2000

	// директивы условной компиляции
	SynElifWithoutIf   Code = 2301
	SynElseWithoutIf   Code = 2302
	SynEndifWithoutIf  Code = 2303
	SynTokensAfterElse Code = 2304
	SynUnclosedIf      Code = 2305
	SynShortCondition  Code = 2306
	SynBadOperator     Code = 2307

	// классы и скобки
	SynClassPredecessor  Code = 2401
	SynClassBrace        Code = 2402
	SynUnexpectedCloser  Code = 2403
	SynBracketMismatch   Code = 2404
	SynUnclosedBracket   Code = 2405
	SynTestWithoutParams Code = 2501

	// Переменные компиляции
	CmpInfo                Code = 3000
	CmpCannotInferKind     Code = 3001
	CmpKindMismatch        Code = 3002
	CmpOrderingUnsupported Code = 3003
	CmpMalformedDefinition Code = 3004

	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	ImpInfo          Code = 5000
	ImpMissingPath   Code = 5001
	ImpSelfImport    Code = 5002
	ImpCycle         Code = 5003
	ImpMissingModule Code = 5004

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexUnterminatedDocBlock:     "Unterminated documentation block",
		SynInfo:                     "Syntax information",
		SynElifWithoutIf:            "'#elif' without matching '#if'",
		SynElseWithoutIf:            "'#else' without matching '#if'",
		SynEndifWithoutIf:           "'#endif' without matching '#if'",
		SynTokensAfterElse:          "Unexpected tokens after '#else'",
		SynUnclosedIf:               "Unclosed '#if'",
		SynShortCondition:           "Condition needs a name, an operator and a value",
		SynBadOperator:              "Unknown comparison operator",
		SynClassPredecessor:         "Class without access specifier",
		SynClassBrace:               "Class without a name",
		SynUnexpectedCloser:         "Closing bracket without opener",
		SynBracketMismatch:          "Mismatched brackets",
		SynUnclosedBracket:          "Unclosed bracket",
		SynTestWithoutParams:        "Test block without a function",
		CmpInfo:                     "Compiler variable information",
		CmpCannotInferKind:          "Cannot infer value kind",
		CmpKindMismatch:             "Value kind does not match variable",
		CmpOrderingUnsupported:      "Ordering is not defined for this kind",
		CmpMalformedDefinition:      "Malformed variable definition",
		IOLoadFileError:             "I/O load file error",
		IOCacheError:                "Module cache error",
		ImpInfo:                     "Import information",
		ImpMissingPath:              "Import without a path",
		ImpSelfImport:               "Module imports itself",
		ImpCycle:                    "Import cycle detected",
		ImpMissingModule:            "Missing module",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CMP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IMP%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

// Category groups codes by the stage family that raises them.
func (c Code) Category() Category {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return CatCompiler
	case ic >= 4000 && ic < 5000:
		return CatFilesystem
	case ic >= 5000 && ic < 6000:
		return CatImport
	}
	return CatSyntax
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
