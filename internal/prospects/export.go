// internal/prospects/export.go
package prospects

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"prospect-dashboard/internal/models"
)

// CSVHeader is the fixed first line of every export.
var CSVHeader = []string{"Name", "Organization", "Location", "Sectors", "Fit Score", "Status", "Email"}

const sectorSeparator = "; "

var ErrMalformedCSV = errors.New("malformed prospect csv")

// ExportRow is one parsed data row of an export.
type ExportRow struct {
	Name         string
	Organization string
	City         string
	State        string
	Sectors      []string
	FitScore     int
	Status       models.Status
	Email        string
}

// RowFor returns the export row of a prospect.
func RowFor(p *models.Prospect) ExportRow {
	return ExportRow{
		Name:         p.Name,
		Organization: p.Org,
		City:         p.Location.City,
		State:        p.Location.State,
		Sectors:      append([]string{}, p.Sectors...),
		FitScore:     p.FitScore,
		Status:       p.Status,
		Email:        p.Email,
	}
}

// WriteCSV writes the header and one fully quoted row per prospect. Lines
// are separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, prospects []models.Prospect) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(CSVHeader, ",")); err != nil {
		return err
	}
	for i := range prospects {
		p := &prospects[i]
		cells := []string{
			p.Name,
			p.Org,
			p.Location.City + ", " + p.Location.State,
			strings.Join(p.Sectors, sectorSeparator),
			strconv.Itoa(p.FitScore),
			p.Status.Label(),
			p.Email,
		}
		if _, err := bw.WriteString("\n" + quoteRow(cells)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ExportCSV renders the export into a string.
func ExportCSV(prospects []models.Prospect) string {
	var sb strings.Builder
	// strings.Builder never returns a write error
	_ = WriteCSV(&sb, prospects)
	return sb.String()
}

// ExportFileName returns the download name for an export made at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("prospects_%s.csv", t.Format("2006-01-02"))
}

// ParseCSV reads an export back into rows. Status labels are mapped back to
// their status values.
func ParseCSV(r io.Reader) ([]ExportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(CSVHeader)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedCSV)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if strings.Join(header, ",") != strings.Join(CSVHeader, ",") {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrMalformedCSV, header)
	}

	rows := []ExportRow{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}
		row, err := parseRow(record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(record []string) (ExportRow, error) {
	score, err := strconv.Atoi(record[4])
	if err != nil {
		return ExportRow{}, fmt.Errorf("fit score %q: %v", record[4], err)
	}
	status, ok := statusForLabel(record[5])
	if !ok {
		return ExportRow{}, fmt.Errorf("unknown status %q", record[5])
	}

	row := ExportRow{
		Name:         record[0],
		Organization: record[1],
		FitScore:     score,
		Status:       status,
		Email:        record[6],
		Sectors:      []string{},
	}
	if idx := strings.LastIndex(record[2], ", "); idx >= 0 {
		row.City, row.State = record[2][:idx], record[2][idx+2:]
	} else {
		row.City = record[2]
	}
	if record[3] != "" {
		row.Sectors = strings.Split(record[3], sectorSeparator)
	}
	return row, nil
}

func statusForLabel(label string) (models.Status, bool) {
	for status, l := range models.StatusLabels {
		if l == label {
			return status, true
		}
	}
	if s := models.Status(label); s.Valid() {
		return s, true
	}
	return "", false
}

func quoteRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
