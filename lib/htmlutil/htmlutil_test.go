package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestTableCells(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<table>
			<tr><th>Rank</th><th>Bank name</th><th>Market cap</th></tr>
			<tr><td>1</td><td><a href="/wiki/x">JPMorgan  Chase</a></td><td>599.931</td></tr>
			<tr><td>2</td><td>Bank of
America</td><td>298.403<sup>[a]</sup></td></tr>
		</table>
	`))
	require.NoError(t, err)

	cells := TableCells(doc.Find("table"))
	require.Equal(t, [][]string{
		{"Rank", "Bank name", "Market cap"},
		{"1", "JPMorgan Chase", "599.931"},
		{"2", "Bank of America", "298.403[a]"},
	}, cells)
}

// a cell whose text wraps across source lines must keep its word
// boundaries
func TestCellTextWrappedLines(t *testing.T) {
	testCases := []struct {
		html     string
		expected string
	}{
		{"<td>Bank of\nAmerica</td>", "Bank of America"},
		{"<td>Bank of\n\tAmerica</td>", "Bank of America"},
		{"<td>Industrial and Commercial\nBank of China</td>", "Industrial and Commercial Bank of China"},
		{"<td>\n\tWells Fargo\n</td>", "Wells Fargo"},
	}

	for _, test := range testCases {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(
			"<table><tr>" + test.html + "</tr></table>"))
		require.NoError(t, err)
		require.Equal(t, test.expected, CellText(doc.Find("td")), "html: %q", test.html)
	}
}

func TestTableCellsEmpty(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<table></table>`))
	require.NoError(t, err)
	require.Empty(t, TableCells(doc.Find("table")))
}
