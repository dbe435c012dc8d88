// Package lint checks generated components against the design system and
// for obvious syntax breakage.
package lint

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/architect/internal/artifact"
	"github.com/alexisbeaulieu97/architect/internal/tokens"
	apperrors "github.com/alexisbeaulieu97/architect/pkg/errors"
)

// Issue is one finding against a component section.
type Issue struct {
	Section artifact.Section `json:"section"`
	Message string           `json:"message"`
}

func (i Issue) String() string {
	return "[" + strings.ToUpper(string(i.Section)) + "] " + i.Message
}

// Report collects the outcome of linting one component.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Passed reports whether the component produced no errors. Warnings never
// fail a report.
func (r Report) Passed() bool {
	return len(r.Errors) == 0
}

// Err returns a ValidationError summarising the errors, or nil.
func (r Report) Err() error {
	if r.Passed() {
		return nil
	}
	messages := make([]string, 0, len(r.Errors))
	for _, issue := range r.Errors {
		messages = append(messages, issue.String())
	}
	return apperrors.NewValidationError("lint", strings.Join(messages, "; "), nil)
}

func (r *Report) addError(section artifact.Section, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Section: section, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) addWarning(section artifact.Section, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Section: section, Message: fmt.Sprintf(format, args...)})
}

// Check lints every section of c. Token references are resolved with table
// before colors and radii are compared, so `#primary` counts as approved.
// A nil table selects the default design system.
func Check(c artifact.Component, table *tokens.Table) Report {
	if table == nil {
		table = tokens.Default()
	}
	rules := newRules(table)
	var report Report

	source := strings.TrimSpace(c.Source)
	if source == "" {
		report.addError(artifact.SectionSource, "TypeScript block is empty.")
	} else {
		checkDecorator(&report, source)
		checkBrackets(&report, artifact.SectionSource, source)
		rules.checkColors(&report, artifact.SectionSource, table.Resolve(source))
	}

	template := strings.TrimSpace(c.Template)
	if template == "" {
		report.addWarning(artifact.SectionTemplate, "HTML block empty, component may use an inline template.")
	} else {
		checkTags(&report, template)
		rules.checkColors(&report, artifact.SectionTemplate, table.Resolve(template))
	}

	style := strings.TrimSpace(c.Style)
	if style == "" {
		report.addWarning(artifact.SectionStyle, "SCSS block empty, no styles generated.")
	} else {
		resolved := table.Resolve(style)
		checkBrackets(&report, artifact.SectionStyle, style)
		rules.checkColors(&report, artifact.SectionStyle, resolved)
		rules.checkRadii(&report, resolved)
		rules.checkFont(&report, resolved)
	}

	return report
}

func checkDecorator(report *Report, source string) {
	if !strings.Contains(source, "@Component") {
		report.addError(artifact.SectionSource, "Missing @Component decorator.")
	}
	if !strings.Contains(source, "selector:") {
		report.addError(artifact.SectionSource, "@Component missing 'selector'.")
	}
	if !strings.Contains(source, "template:") && !strings.Contains(source, "templateUrl:") {
		report.addError(artifact.SectionSource, "@Component missing 'template' or 'templateUrl'.")
	}
}
