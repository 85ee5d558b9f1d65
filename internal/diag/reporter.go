package diag

import "tcab/internal/token"

// Reporter — минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag), DedupReporter.
type Reporter interface {
	Report(code Code, sev Severity, tok *token.Token, msg, hint string, notes []Note)
}

// ReportBuilder accumulates diagnostic details before emitting to Reporter.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// NewReportBuilder constructs a builder bound to Reporter.
func NewReportBuilder(r Reporter, sev Severity, code Code, tok *token.Token, msg string) *ReportBuilder {
	return &ReportBuilder{
		reporter: r,
		diag:     New(sev, code, tok, msg),
	}
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, tok *token.Token, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevError, code, tok, msg)
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, tok *token.Token, msg string) *ReportBuilder {
	return NewReportBuilder(r, SevWarning, code, tok, msg)
}

// WithHint sets the suggested remedy.
func (b *ReportBuilder) WithHint(hint string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag.Hint = hint
	return b
}

// WithNote appends a note to diagnostic.
func (b *ReportBuilder) WithNote(tok *token.Token, msg string) *ReportBuilder {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(tok, msg)
	return b
}

// Emit sends diagnostic to underlying reporter exactly once.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		d := b.diag
		b.reporter.Report(d.Code, d.Severity, d.Token, d.Message, d.Hint, d.Notes)
	}
	b.emitted = true
}

// Fatal turns the accumulated diagnostic into a *FatalError without emitting it.
func (b *ReportBuilder) Fatal() *FatalError {
	if b == nil {
		return nil
	}
	b.emitted = true
	return Fatal(b.diag)
}

// Diagnostic returns accumulated diagnostic without emitting.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.diag
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, tok *token.Token, msg, hint string, notes []Note) {
	if r.Bag == nil {
		return
	}
	d := New(sev, code, tok, msg)
	d.Hint = hint
	d.Notes = notes
	r.Bag.Add(d)
}
