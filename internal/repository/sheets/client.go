// Package sheets implements the row store against the Google Sheets API
// and the typed repositories layered on top of it. Each logical table is
// one tab; the first row of a tab is its header.
package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/asthmacare/clinic-api/internal/repository"
	"github.com/asthmacare/clinic-api/pkg/circuitbreaker"
	"github.com/asthmacare/clinic-api/pkg/errors"
	"github.com/asthmacare/clinic-api/pkg/metrics"
)

// readRange covers every column a tab can use.
const readRange = "A:Z"

type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	metrics       *metrics.Metrics
	breaker       *circuitbreaker.CircuitBreaker
}

// NewClient builds a RowStore backed by one spreadsheet. Credentials are a
// service-account JSON file. All API calls run through a circuit breaker
// so a spreadsheet outage fails fast instead of queueing requests.
func NewClient(ctx context.Context, spreadsheetID, credentialsFile string, m *metrics.Metrics) (*Client, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		metrics:       m,
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "sheets-api",
			MaxFailures: 5,
			Cooldown:    30 * time.Second,
		}),
	}, nil
}

func (c *Client) call(fn func() error) error {
	if c.breaker == nil {
		return fn()
	}
	return c.breaker.Execute(fn)
}

var _ repository.RowStore = (*Client)(nil)

// Ping fetches the spreadsheet's id only, confirming reachability and
// credentials without pulling any rows.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.svc.Spreadsheets.
		Get(c.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("spreadsheet ping failed: %w", err)
	}
	return nil
}

func (c *Client) GetRows(ctx context.Context, tab string) ([][]string, error) {
	defer c.observe("get", tab, time.Now())

	var resp *gsheets.ValueRange
	err := c.call(func() error {
		var callErr error
		resp, callErr = c.svc.Spreadsheets.Values.
			Get(c.spreadsheetID, tab+"!"+readRange).
			Context(ctx).Do()
		return callErr
	})
	if err != nil {
		c.count("get", tab, "error")
		return nil, errors.Write("read", err)
	}
	c.count("get", tab, "ok")

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) AppendRow(ctx context.Context, tab string, values []string) error {
	defer c.observe("append", tab, time.Now())

	err := c.call(func() error {
		_, callErr := c.svc.Spreadsheets.Values.
			Append(c.spreadsheetID, tab+"!A:A", &gsheets.ValueRange{
				Values: [][]interface{}{toInterfaces(values)},
			}).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return callErr
	})
	if err != nil {
		c.count("append", tab, "error")
		return errors.Write("append", err)
	}
	c.count("append", tab, "ok")
	return nil
}

func (c *Client) UpdateCell(ctx context.Context, tab, key string, columnOffset int, value string) error {
	defer c.observe("update_cell", tab, time.Now())

	idx, err := c.findRowIndex(ctx, tab, key)
	if err != nil {
		c.count("update_cell", tab, "error")
		return err
	}

	cellRange := fmt.Sprintf("%s!%s%d", tab, columnLetter(columnOffset), idx+1)
	err = c.call(func() error {
		_, callErr := c.svc.Spreadsheets.Values.
			Update(c.spreadsheetID, cellRange, &gsheets.ValueRange{
				Values: [][]interface{}{{value}},
			}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		return callErr
	})
	if err != nil {
		c.count("update_cell", tab, "error")
		return errors.Write("update", err)
	}
	c.count("update_cell", tab, "ok")
	return nil
}

func (c *Client) UpdateRow(ctx context.Context, tab, key string, values []string) error {
	defer c.observe("update_row", tab, time.Now())

	idx, err := c.findRowIndex(ctx, tab, key)
	if err != nil {
		c.count("update_row", tab, "error")
		return err
	}

	rowRange := fmt.Sprintf("%s!A%d:%s%d", tab, idx+1, columnLetter(len(values)-1), idx+1)
	err = c.call(func() error {
		_, callErr := c.svc.Spreadsheets.Values.
			Update(c.spreadsheetID, rowRange, &gsheets.ValueRange{
				Values: [][]interface{}{toInterfaces(values)},
			}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		return callErr
	})
	if err != nil {
		c.count("update_row", tab, "error")
		return errors.Write("update", err)
	}
	c.count("update_row", tab, "ok")
	return nil
}

func (c *Client) DeleteRow(ctx context.Context, tab, key string) error {
	defer c.observe("delete", tab, time.Now())

	idx, err := c.findRowIndex(ctx, tab, key)
	if err != nil {
		c.count("delete", tab, "error")
		return err
	}
	if idx == 0 {
		c.count("delete", tab, "error")
		return errors.ProtectedRow(tab)
	}

	sheetID, err := c.sheetID(ctx, tab)
	if err != nil {
		c.count("delete", tab, "error")
		return err
	}

	err = c.call(func() error {
		_, callErr := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheets.BatchUpdateSpreadsheetRequest{
			Requests: []*gsheets.Request{{
				DeleteDimension: &gsheets.DeleteDimensionRequest{
					Range: &gsheets.DimensionRange{
						SheetId:    sheetID,
						Dimension:  "ROWS",
						StartIndex: int64(idx),
						EndIndex:   int64(idx + 1),
					},
				},
			}},
		}).Context(ctx).Do()
		return callErr
	})
	if err != nil {
		c.count("delete", tab, "error")
		return errors.Write("delete", err)
	}
	c.count("delete", tab, "ok")
	return nil
}

// findRowIndex locates the 0-indexed row whose first column equals key.
// Exact match only; normalization is the caller's job.
func (c *Client) findRowIndex(ctx context.Context, tab, key string) (int, error) {
	rows, err := c.GetRows(ctx, tab)
	if err != nil {
		return 0, err
	}
	for i, row := range rows {
		if len(row) > 0 && row[0] == key {
			return i, nil
		}
	}
	return 0, errors.NotFound(fmt.Sprintf("row %q in tab %q", key, tab), nil)
}

func (c *Client) sheetID(ctx context.Context, tab string) (int64, error) {
	var meta *gsheets.Spreadsheet
	err := c.call(func() error {
		var callErr error
		meta, callErr = c.svc.Spreadsheets.Get(c.spreadsheetID).
			Fields("sheets.properties").
			Context(ctx).Do()
		return callErr
	})
	if err != nil {
		return 0, errors.Write("metadata", err)
	}
	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == tab {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, errors.NotFound(fmt.Sprintf("tab %q", tab), nil)
}

func (c *Client) observe(op, tab string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.StoreLatency.WithLabelValues(op, tab).Observe(time.Since(start).Seconds())
}

func (c *Client) count(op, tab, status string) {
	if c.metrics == nil {
		return
	}
	c.metrics.StoreOperations.WithLabelValues(op, tab, status).Inc()
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// columnLetter converts a 0-indexed column offset to its A1 letter.
func columnLetter(offset int) string {
	letters := ""
	n := offset
	for {
		letters = string(rune('A'+n%26)) + letters
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	return letters
}
