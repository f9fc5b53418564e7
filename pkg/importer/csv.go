// Package importer loads project records from CSV files. Rows are upserted
// on the natural key (title, constituency_code, source_doc_ref); a row that
// fails to parse or upsert is reported and skipped so the rest of the file
// still imports.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/project"
)

// Summary counts the outcome of one import run.
type Summary struct {
	Created int
	Updated int
	Failed  int
}

// ImportCSV reads the header-keyed CSV from r and upserts every row through
// svc. Row failures are written to report and counted; only a malformed
// header or an unreadable stream aborts the run.
func ImportCSV(ctx context.Context, svc *project.Service, r io.Reader, report io.Writer) (Summary, error) {
	var sum Summary

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return sum, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		// Spreadsheet exports often prepend a BOM to the first header cell.
		cols[strings.TrimPrefix(strings.TrimSpace(name), "\uFEFF")] = i
	}
	for _, required := range []string{"title", "constituency_code"} {
		if _, ok := cols[required]; !ok {
			return sum, fmt.Errorf("missing required column %q", required)
		}
	}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			sum.Failed++
			fmt.Fprintf(report, "line %d: %v\n", line, err)
			continue
		}

		rec, err := parseRow(cols, row)
		if err != nil {
			sum.Failed++
			fmt.Fprintf(report, "line %d: %v: %v\n", line, err, row)
			continue
		}

		result, err := svc.Upsert(ctx, rec)
		if err != nil {
			sum.Failed++
			fmt.Fprintf(report, "line %d: upsert %q: %v\n", line, rec.Title, err)
			continue
		}
		if result == project.ResultCreated {
			sum.Created++
		} else {
			sum.Updated++
		}
	}
	return sum, nil
}

func parseRow(cols map[string]int, row []string) (*model.Project, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	optStr := func(name string) *string {
		v := field(name)
		if v == "" {
			return nil
		}
		return &v
	}

	title := field("title")
	code := field("constituency_code")
	if title == "" || code == "" {
		return nil, fmt.Errorf("missing title or constituency_code")
	}

	category, err := model.ParseProjectCategory(lo.Ternary(field("category") != "", field("category"), string(model.CategoryOther)))
	if err != nil {
		return nil, err
	}
	status, err := model.ParseProjectStatus(lo.Ternary(field("status") != "", field("status"), string(model.StatusPlanned)))
	if err != nil {
		return nil, err
	}

	budget := 0.0
	if v := field("budget"); v != "" {
		if budget, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("budget: %w", err)
		}
	}
	spent, err := optFloat(field("spent"))
	if err != nil {
		return nil, fmt.Errorf("spent: %w", err)
	}
	progress, err := optFloat(field("progress"))
	if err != nil {
		return nil, fmt.Errorf("progress: %w", err)
	}
	startDate, err := optDate(field("start_date"))
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}
	completionDate, err := optDate(field("completion_date"))
	if err != nil {
		return nil, fmt.Errorf("completion_date: %w", err)
	}

	isMock := false
	switch strings.ToLower(field("is_mock")) {
	case "1", "true", "yes", "y":
		isMock = true
	}

	return &model.Project{
		Title:            title,
		Description:      optStr("description"),
		Category:         category,
		Status:           status,
		Budget:           budget,
		Spent:            spent,
		Progress:         progress,
		ConstituencyCode: code,
		StartDate:        startDate,
		CompletionDate:   completionDate,
		IsMock:           isMock,
		SourceName:       optStr("source_name"),
		SourceURL:        optStr("source_url"),
		SourceDocRef:     optStr("source_doc_ref"),
	}, nil
}

func optFloat(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
