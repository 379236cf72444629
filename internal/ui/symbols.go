package ui

const (
	SymbolSuccess  = "✓"
	SymbolFail     = "✗"
	SymbolComplete = "●"
	SymbolSkipped  = "⊘"
	SymbolWarning  = "⚠"
)
