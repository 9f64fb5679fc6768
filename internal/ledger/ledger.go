package ledger

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Transaction is one row of the ledger. Category may be empty pending
// manual tagging; Timestamp and Amount are always set.
type Transaction struct {
	Timestamp   time.Time
	Amount      float64
	Category    string
	Type        string
	Description string
}

// ErrMissingColumns is returned when a CSV source lacks one of the
// required columns. Callers fall back to the bundled default dataset.
var ErrMissingColumns = errors.New("csv missing required columns")

var requiredColumns = []string{"datetime", "amount", "category", "type"}

var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadResult reports the outcome of a CSV load. Row-level problems are
// collected in Errors; they never abort the whole file.
type LoadResult struct {
	Transactions []Transaction
	Skipped      int
	Errors       []error
}

// Load reads a header-driven CSV. Required columns: datetime, amount,
// category, type. Extra columns are ignored; a description column is
// captured when present.
func Load(r io.Reader) (LoadResult, error) {
	res := LoadResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if err == io.EOF {
		return res, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return res, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	descIdx, hasDesc := idx["description"]

	line := 1
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			res.Skipped++
			continue
		}
		field := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		ts, err := ParseTimestamp(field(idx["datetime"]))
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d datetime: %w", line, err))
			res.Skipped++
			continue
		}
		amount, err := strconv.ParseFloat(field(idx["amount"]), 64)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d amount: %w", line, err))
			res.Skipped++
			continue
		}
		if amount < 0 {
			res.Errors = append(res.Errors, fmt.Errorf("line %d amount: negative value %v", line, amount))
			res.Skipped++
			continue
		}
		t := Transaction{
			Timestamp: ts,
			Amount:    amount,
			Category:  field(idx["category"]),
			Type:      field(idx["type"]),
		}
		if hasDesc {
			t.Description = field(descIdx)
		}
		res.Transactions = append(res.Transactions, t)
	}

	sort.SliceStable(res.Transactions, func(i, j int) bool {
		return res.Transactions[i].Timestamp.Before(res.Transactions[j].Timestamp)
	})
	return res, nil
}

// LoadFile loads a ledger CSV from disk.
func LoadFile(path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// ParseTimestamp accepts RFC 3339 and the common date/datetime layouts
// seen in exports.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// Append writes transactions to the end of a CSV file, creating it with
// a header when absent. This is the poller's only hand-off point into
// the ledger; interactive code never shares memory with it.
func Append(path string, txs ...Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"datetime", "amount", "category", "type", "description"}); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, t := range txs {
		rec := []string{
			t.Timestamp.Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Category,
			t.Type,
			t.Description,
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// Categories returns the distinct non-empty category names present in
// the ledger, sorted for deterministic iteration.
func Categories(txs []Transaction) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range txs {
		if t.Category == "" {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	sort.Strings(out)
	return out
}

// Types returns the distinct non-empty type tags, sorted.
func Types(txs []Transaction) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, t := range txs {
		if t.Type == "" {
			continue
		}
		if _, ok := seen[t.Type]; ok {
			continue
		}
		seen[t.Type] = struct{}{}
		out = append(out, t.Type)
	}
	sort.Strings(out)
	return out
}
