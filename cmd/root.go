package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"seance-finder-cli/service"
	"seance-finder-cli/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Affiche la version de Séance Finder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Séance Finder v0.1 -- HEAD")
	},
}

var rootCmd = &cobra.Command{
	Use:   "seance",
	Short: "Séance Finder",
	Long:  `Trouvez les films, spectacles et séances de votre cinéma depuis le terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		program := tea.NewProgram(tui.New(newClient()), tea.WithAltScreen())
		_, err := program.Run()
		return err
	},
}

func newClient() *service.Client {
	return service.NewClient(nil, os.Getenv("API_BASE_URL"))
}

func Execute() {
	rootCmd.AddCommand(programmeCmd, eventsCmd, sessionsCmd, versionCmd)
	programmeCmd.Flags().String("date", "", "date du programme au format AAAA-MM-JJ")
	eventsCmd.Flags().String("type", "movie", "type d'événement [movie, show]")
	eventsCmd.Flags().String("genre", "", "genre de film ex: [Comédie, Drame]")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
