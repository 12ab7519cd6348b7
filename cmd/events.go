package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"seance-finder-cli/service"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Liste les événements à l'affiche",
	Long:  `Liste les films et spectacles, filtrables par type et par genre.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := service.EventsQuery{
			Type:  cmd.Flag("type").Value.String(),
			Genre: cmd.Flag("genre").Value.String(),
		}

		listing := newClient().EventsWithALaffiche(context.Background(), query)
		if len(listing.Events) == 0 {
			fmt.Println("Aucun événement trouvé.")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Titre", "Type", "Durée", "Genres", "Âge"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, WidthMax: 36},
			{Number: 4, WidthMax: 28},
		})

		for _, event := range listing.Events {
			t.AppendRow(table.Row{event.Title, event.Badge, event.DurationLabel, event.GenresLabel, event.AgeRestriction})
		}
		t.Render()

		if len(listing.Prochainement) > 0 {
			fmt.Println()
			fmt.Println("Prochainement :")
			for _, event := range listing.Prochainement {
				fmt.Printf("  - %s\n", event.Title)
			}
		}
		return nil
	},
}
