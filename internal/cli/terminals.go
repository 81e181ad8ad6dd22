package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tsijukebox/jukebox/internal/config"
	"github.com/tsijukebox/jukebox/internal/store"
)

var terminalsNewSet bool

var terminalsCmd = &cobra.Command{
	Use:   "terminals",
	Short: "Manage kiosk sessions in the shared session database",
	Long: `Lists and manages the per-terminal sessions kept in the SQLite store
(store.driver = "sqlite"). Each kiosk uses its own terminal ID.`,
	RunE: runTerminalsList,
}

var terminalsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a terminal ID",
	Args:  cobra.NoArgs,
	RunE:  runTerminalsNew,
}

var terminalsDeleteCmd = &cobra.Command{
	Use:   "delete <terminal-id>",
	Short: "Delete a terminal's stored session",
	Args:  cobra.ExactArgs(1),
	RunE:  runTerminalsDelete,
}

func init() {
	terminalsNewCmd.Flags().BoolVar(&terminalsNewSet, "set", false, "write the ID to store.terminal_id")

	terminalsCmd.AddCommand(terminalsNewCmd)
	terminalsCmd.AddCommand(terminalsDeleteCmd)
	rootCmd.AddCommand(terminalsCmd)
}

// sessionDBPath is store.path when it names the database, otherwise the
// default location.
func sessionDBPath() string {
	if cfg.Store.Driver == config.StoreSQLite {
		return cfg.Store.Path
	}
	return ""
}

func runTerminalsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := store.Open(ctx, sessionDBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	terminals, err := db.List(ctx)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(terminals)
	}
	if len(terminals) == 0 {
		fmt.Println("No terminals")
		return nil
	}

	t := NewTable("", "TERMINAL", "CLIENT", "EXPIRES", "UPDATED")
	for _, term := range terminals {
		marker := " "
		if term.ID == cfg.Store.TerminalID {
			marker = "*"
		}
		expires := "-"
		if term.Authenticated && !term.ExpiresAt.IsZero() {
			expires = humanize.Time(term.ExpiresAt)
		}
		t.Row(marker, term.ID, TruncateString(term.ClientID, 16), expires, humanize.Time(term.UpdatedAt))
	}
	t.Flush()
	return nil
}

func runTerminalsNew(cmd *cobra.Command, args []string) error {
	id := store.NewTerminalID()
	if terminalsNewSet {
		values := map[string]interface{}{
			"store.driver":      "sqlite",
			"store.terminal_id": id,
		}
		if err := updateConfigFile(configPath(), values); err != nil {
			return err
		}
	}

	if JSONOutput() {
		return printJSON(map[string]interface{}{"terminal_id": id, "saved": terminalsNewSet})
	}
	fmt.Println(id)
	return nil
}

func runTerminalsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := store.Open(ctx, sessionDBPath())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Delete(ctx, args[0]); err != nil {
		return err
	}
	return printStatus("deleted", fmt.Sprintf("Deleted session for %s", args[0]), map[string]interface{}{"terminal_id": args[0]})
}
