package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	ports "github.com/actaeon02/budget-tracker/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client talks to one spreadsheet whose worksheets are named after the
// logical tables (Expenses, Income, Budget) unless overridden.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetNames    map[ports.Table]string
}

// Ensure interface conformance
var (
	_ ports.RowAppender = (*Client)(nil)
	_ ports.RowReader   = (*Client)(nil)
	_ ports.Store       = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
// Optional worksheet overrides: GOOGLE_EXPENSES_SHEET_NAME,
// GOOGLE_INCOME_SHEET_NAME, GOOGLE_BUDGET_SHEET_NAME.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	names := map[ports.Table]string{
		ports.Expenses: sheetNameFromEnv("GOOGLE_EXPENSES_SHEET_NAME", ports.Expenses),
		ports.Income:   sheetNameFromEnv("GOOGLE_INCOME_SHEET_NAME", ports.Income),
		ports.Budget:   sheetNameFromEnv("GOOGLE_BUDGET_SHEET_NAME", ports.Budget),
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetNames:    names,
	}, nil
}

func sheetNameFromEnv(key string, fallback ports.Table) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return string(fallback)
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// AppendRow appends one row after the last non-empty row of the table.
func (c *Client) AppendRow(ctx context.Context, table ports.Table, cells []any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	sheetName, ok := c.sheetNames[table]
	if !ok {
		return fmt.Errorf("unknown table: %s", table)
	}

	rng := fmt.Sprintf("%s!A:A", sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{cells}}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", sheetName, err)
	}
	return nil
}

// ReadAll returns every row of the table, header included.
func (c *Client) ReadAll(ctx context.Context, table ports.Table) ([]ports.Row, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	sheetName, ok := c.sheetNames[table]
	if !ok {
		return nil, fmt.Errorf("unknown table: %s", table)
	}

	rng := fmt.Sprintf("%s!A:Z", sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	out := make([]ports.Row, 0, len(resp.Values))
	for _, row := range resp.Values {
		out = append(out, toStrings(row))
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
