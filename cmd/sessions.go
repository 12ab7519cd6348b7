package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"

	"seance-finder-cli/schedule"
	"seance-finder-cli/service"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Affiche les séances d'un événement",
	Long:  `Choisissez un événement à l'affiche et affichez toutes ses séances à venir, jour par jour.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		ctx := context.Background()

		listing := client.EventsWithALaffiche(ctx, service.EventsQuery{})
		if len(listing.Events) == 0 {
			return errors.New("aucun événement disponible")
		}

		eventIDByTitle := make(map[string]string)
		for _, event := range listing.Events {
			eventIDByTitle[event.Title] = event.ID
		}
		titles := maps.Keys(eventIDByTitle)
		sort.Strings(titles)

		selectEvent := promptui.Select{
			Label: "Choisir un événement",
			Items: titles,
			Size:  10,
		}
		_, title, err := selectEvent.Run()
		if err != nil {
			return err
		}

		event, sessions, found := client.EventSessions(ctx, eventIDByTitle[title])
		if !found {
			return errors.New("événement introuvable")
		}

		buckets, keys := schedule.GroupSessionsByDate(sessions, time.Now())
		if len(keys) == 0 {
			fmt.Printf("Aucune séance à venir pour %s.\n", event.Title)
			return nil
		}

		rowConfigAutoMerge := table.RowConfig{AutoMerge: true}
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle(event.Title)
		t.AppendHeader(table.Row{"Date", "Séance", "Version", "Places"}, rowConfigAutoMerge)
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, AutoMerge: true},
		})
		t.Style().Options.SeparateRows = true

		for _, key := range keys {
			var rows []table.Row
			for _, session := range buckets[key] {
				seats := fmt.Sprintf("%d", session.AvailableSeats)
				if session.SoldOut() {
					seats = "complet"
				}
				rows = append(rows, table.Row{schedule.FormatShortDate(key), session.Time, session.Version, seats})
			}
			t.AppendRows(rows, rowConfigAutoMerge)
			t.AppendSeparator()
		}

		t.Render()
		return nil
	},
}
