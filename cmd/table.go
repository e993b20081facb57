package cmd

import (
	"io"
	"strconv"

	"github.com/etnz/payments"
	"github.com/olekukonko/tablewriter"
)

// encodeTable writes the accounts as an aligned text table, for reading in a terminal.
func encodeTable(w io.Writer, snaps []payments.Snapshot) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(payments.SnapshotHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, s := range snaps {
		table.Append([]string{
			strconv.FormatUint(uint64(s.Client), 10),
			s.Available.String(),
			s.Held.String(),
			s.Total.String(),
			strconv.FormatBool(s.Locked),
		})
	}
	table.Render()
	return nil
}
