package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/wardenhq/warden/internal/model"
)

// JSONPrinter prints sandbox information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// listItem represents a sandbox in the list output (subset of fields).
type listItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Image       string    `json:"image"`
	ContainerID string    `json:"container_id"`
	Privileged  bool      `json:"privileged"`
	CreatedAt   time.Time `json:"created_at"`
}

// checkItem represents one preflight check result.
type checkItem struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintList prints sandboxes in JSON format with a subset of fields.
func (j *JSONPrinter) PrintList(sandboxes []model.Sandbox) error {
	items := make([]listItem, len(sandboxes))
	for i, s := range sandboxes {
		items[i] = listItem{
			ID:          s.ID,
			Name:        s.Name,
			Status:      string(s.Status),
			Image:       s.Image,
			ContainerID: s.ContainerID,
			Privileged:  s.Security.Privileged,
			CreatedAt:   s.CreatedAt,
		}
	}
	return j.encode(items)
}

// PrintChecks prints preflight check results in JSON format.
func (j *JSONPrinter) PrintChecks(results []model.CheckResult) error {
	items := make([]checkItem, len(results))
	for i, r := range results {
		items[i] = checkItem{
			ID:      r.ID,
			Status:  string(r.Status),
			Message: r.Message,
		}
	}
	return j.encode(items)
}

// PrintMessage prints a plain message wrapped in a JSON object.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
