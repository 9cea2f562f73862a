package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/lc/nslook/internal/lookup"
)

// printResult writes the queried domain, the record type and either the
// addresses, one per line, or a no-results notice.
func printResult(w io.Writer, res *lookup.Result, table bool) error {
	label := color.New(color.Bold)

	label.Fprint(w, "Domain: ")
	fmt.Fprintln(w, res.Domain)
	label.Fprint(w, "Record type: ")
	fmt.Fprintln(w, res.RecordType)

	if len(res.Addresses) == 0 {
		color.New(color.FgYellow).Fprintln(w, "No results found.")
		return nil
	}

	if table {
		tw := tablewriter.NewWriter(w)
		tw.SetHeader([]string{"#", "Address"})
		tw.SetHeaderColor(
			tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
			tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
		)
		tw.SetBorder(false)
		for i, addr := range res.Addresses {
			tw.Append([]string{strconv.Itoa(i + 1), addr})
		}
		tw.Render()
		return nil
	}

	label.Fprintln(w, "Results:")
	for _, addr := range res.Addresses {
		color.New(color.FgGreen).Fprintln(w, addr)
	}
	return nil
}
