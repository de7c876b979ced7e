package banklist

import (
	"context"
	"fmt"

	"bankcap-backend/lib/htmlutil"
	"bankcap-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var (
	ErrAnchorNotFound     = fmt.Errorf("section anchor not found")
	ErrNoTableAfterAnchor = fmt.Errorf("no table follows the section anchor")
	ErrMalformedTable     = fmt.Errorf("table has an unexpected shape")
)

// the ranking table starts with a rank column, the bank name sits in the
// second cell of each row
const nameColumn = 1

// LocateTable returns the first <table> that appears after the element
// with the given id, in document order. There is no fallback and no
// fuzzy search: a missing anchor or a missing table is fatal.
func LocateTable(doc *goquery.Document, anchorID string) (*goquery.Selection, error) {
	anchor := doc.Find(fmt.Sprintf("[id=%q]", anchorID))
	if anchor.Length() == 0 {
		return nil, fmt.Errorf("%w: id=%q", ErrAnchorNotFound, anchorID)
	}

	for node := nextInDocument(anchor.Nodes[0]); node != nil; node = nextInDocument(node) {
		if node.Type == html.ElementNode && node.Data == "table" {
			return doc.FindNodes(node), nil
		}
	}
	return nil, fmt.Errorf("%w: id=%q", ErrNoTableAfterAnchor, anchorID)
}

// depth-first successor over the whole document tree
func nextInDocument(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// ExtractRecords reads at most limit data rows out of the located table.
// The name and value columns are selected by position, not by header
// text, since the header wording shifts between page revisions; a page
// that reorders its columns will not be caught here. valueCol is a
// 0-based cell index. Rows whose value cell is not numeric yield a nil
// MarketCapUSD rather than an error.
func ExtractRecords(ctx context.Context, table *goquery.Selection, limit, valueCol int) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "ExtractRecords")
	defer span.End()

	rows := htmlutil.TableCells(table)
	// first row is the header
	if len(rows) < 2 {
		err := fmt.Errorf("%w: %d rows", ErrMalformedTable, len(rows))
		span.RecordError(err)
		span.SetStatus(codes.Error, "not enough rows")
		return nil, err
	}

	data := rows[1:]
	if len(data) > limit {
		data = data[:limit]
	}

	records := make([]Record, 0, len(data))
	for i, cells := range data {
		if len(cells) < 3 || valueCol >= len(cells) {
			err := fmt.Errorf("%w: row %d has %d columns", ErrMalformedTable, i, len(cells))
			span.RecordError(err)
			span.SetStatus(codes.Error, "not enough columns")
			return nil, err
		}

		name := cells[nameColumn]
		if name == "" {
			err := fmt.Errorf("%w: row %d has an empty name", ErrMalformedTable, i)
			span.RecordError(err)
			span.SetStatus(codes.Error, "empty name cell")
			return nil, err
		}

		record := Record{Name: name}
		if value, ok := textutil.CoerceFloat(cells[valueCol]); ok {
			record.MarketCapUSD = &value
		}
		records = append(records, record)
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}
