package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"debt-ledger-go/internal/common"
	"debt-ledger-go/internal/ledger"
)

const currencySymbol = "€"

// Render writes the full table plus the total and last active user lines.
// The total always covers every record, filtered or not.
func Render(w io.Writer, s *Session) {
	title := "DEBT LEDGER"
	if s.Filtered() {
		title = fmt.Sprintf("DEBT LEDGER (search: %q)", s.Filter())
	}
	common.PrintHeader(w, title, common.DefaultWidth)

	rows := s.Rows()
	if len(rows) == 0 {
		if s.Filtered() {
			fmt.Fprintln(w, "No users match the search.")
		} else {
			fmt.Fprintln(w, "No users yet.")
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tName\tDebt\tUpdated\t")
		for i, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t\n",
				i+1, r.Name, ledger.FormatAmount(r.Debt), currencySymbol, s.store.Elapsed(r))
		}
		tw.Flush()
	}

	store := s.Store()
	common.PrintFooter(w, fmt.Sprintf("Total debt: %s %s", ledger.FormatAmount(store.TotalDebt()), currencySymbol), common.DefaultWidth)
	if last := store.LastActiveUserName(); last != "" {
		fmt.Fprintf(w, "Last active user: %s\n", last)
	}
}
