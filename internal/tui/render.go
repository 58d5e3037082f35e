// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/shopfloor-sync/internal/provider"
	"github.com/MKhiriev/shopfloor-sync/models"
)

// RenderStatus renders the provider state, the queue depth and the
// watermarks of the sync-enabled collections.
func RenderStatus(status models.ClientStatus) string {
	var b strings.Builder

	active := string(status.Provider.Active)
	if active == "" {
		active = "none"
	}
	connected := errorStyle.Render("offline")
	if status.Provider.Connected {
		connected = okStyle.Render("online")
	}

	b.WriteString(fmt.Sprintf("Device:   %s\n", status.DeviceID))
	b.WriteString(fmt.Sprintf("Remote:   %s (%s)\n", status.RemoteAddress, connected))
	b.WriteString(fmt.Sprintf("Provider: %s\n", active))
	if status.ProviderError != "" {
		b.WriteString(fmt.Sprintf("Last error: %s\n", warnStyle.Render(status.ProviderError)))
	}
	b.WriteString("\n")

	pending := make(map[string]int, len(status.Pending))
	for _, p := range status.Pending {
		pending[p.Collection] = p.Count
	}

	rows := make([][]string, 0, len(status.Watermarks))
	for _, w := range status.Watermarks {
		rows = append(rows, []string{w.Collection, strconv.Itoa(pending[w.Collection]), valueOrDash(w.Watermark)})
	}
	b.WriteString(renderTable([]string{"Collection", "Pending", "Watermark"}, rows))

	footer := fmt.Sprintf("%d change(s) waiting to be pushed │ build %s", status.PendingTotal(), valueOrNA(status.Build.Version))
	return renderPage("STATUS", b.String(), footer)
}

// RenderReport renders the outcome of a sync run, one row per collection.
func RenderReport(report models.SyncReport) string {
	rows := make([][]string, 0, len(report.Collections))
	for _, c := range report.Collections {
		result := okStyle.Render("ok")
		if c.Failed() {
			result = errorStyle.Render(c.Error)
		}
		watermark := c.Watermark
		rows = append(rows, []string{
			c.Collection,
			strconv.Itoa(c.Pushed),
			strconv.Itoa(c.Pulled),
			strconv.Itoa(c.Removed),
			valueOrDash(&watermark),
			result,
		})
	}

	footer := ""
	if failed := report.Failed(); len(failed) > 0 {
		footer = fmt.Sprintf("%d of %d collection(s) failed; pending changes are kept for the next run", len(failed), len(report.Collections))
	}

	return renderPage("SYNC", renderTable([]string{"Collection", "Pushed", "Pulled", "Removed", "Watermark", "Result"}, rows), footer)
}

// RenderRecord renders one record as indented JSON.
func RenderRecord(record models.Record) (string, error) {
	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render record: %w", err)
	}
	return string(out), nil
}

// RenderRecords renders one compact JSON object per line followed by a
// faint count.
func RenderRecords(records []models.Record) (string, error) {
	var b strings.Builder
	for _, rec := range records {
		out, err := json.Marshal(rec)
		if err != nil {
			return "", fmt.Errorf("render records: %w", err)
		}
		b.Write(out)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d record(s)", len(records))))
	return b.String(), nil
}

// RenderWarning renders a provider fallback in a bordered box.
func RenderWarning(w provider.Warning) string {
	return boxStyle.Render(warnStyle.Render("WARNING") + " " + w.String())
}

// RenderToggle renders the outcome of switching providers.
func RenderToggle(result provider.ToggleResult) string {
	if result.Switched {
		return okStyle.Render(fmt.Sprintf("using %s provider", result.Active))
	}
	return boxStyle.Render(fmt.Sprintf("%s could not switch provider: %v\nstill using %s provider",
		warnStyle.Render("WARNING"), result.Err, result.Active))
}

// RenderError renders a command failure.
func RenderError(err error) string {
	return errorStyle.Render("error:") + " " + err.Error()
}
