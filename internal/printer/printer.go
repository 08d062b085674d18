package printer

import "github.com/wardenhq/warden/internal/model"

// Printer knows how to print sandbox information in different formats.
type Printer interface {
	PrintList(sandboxes []model.Sandbox) error
	PrintChecks(results []model.CheckResult) error
	PrintMessage(msg string) error
}
