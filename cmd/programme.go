package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"seance-finder-cli/schedule"
)

var programmeCmd = &cobra.Command{
	Use:   "programme",
	Short: "Affiche le programme d'une date",
	Long:  `Affiche tous les films et spectacles avec leurs séances pour une date donnée.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dateKey := cmd.Flag("date").Value.String()
		today := schedule.DateKey(time.Now())
		if dateKey == "" {
			dateKey = today
		}
		parsed, ok := schedule.ParseDateKey(dateKey)
		if !ok {
			return fmt.Errorf("date invalide %q, format attendu AAAA-MM-JJ", dateKey)
		}
		// Past dates never have bookable sessions, start from today instead.
		if parsed.Before(schedule.Truncate(time.Now())) {
			dateKey = today
		}

		day := newClient().SessionsByDate(context.Background(), dateKey)
		if len(day.Events) == 0 {
			fmt.Printf("Aucune séance pour le %s.\n", schedule.FormatShortDate(dateKey))
			return nil
		}

		rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("Programme du " + schedule.FormatShortDate(dateKey))
		t.AppendHeader(table.Row{"Film", "Séance", "Version", "Places"}, rowConfigAutoMerge)
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, AutoMerge: true, WidthMax: 32},
		})
		t.Style().Options.SeparateRows = true

		for _, entry := range day.Events {
			var rows []table.Row
			for _, session := range entry.Sessions {
				seats := fmt.Sprintf("%d", session.AvailableSeats)
				if session.SoldOut() {
					seats = "complet"
				}
				rows = append(rows, table.Row{entry.Event.Title, session.Time, session.Version, seats})
			}
			t.AppendRows(rows, rowConfigAutoMerge)
			t.AppendSeparator()
		}

		t.Render()
		return nil
	},
}
