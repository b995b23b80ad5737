package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docsite/internal/kvstore"
)

var prefsProfile string

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage the local framework preferences used by `docsite site`",
	Long: `Hidden frameworks for local builds are kept in a SQLite profile under
data_dir. When the profile holds a value, ` + "`docsite site`" + ` renders with it instead
of default_hidden.`,
}

var prefsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every category and whether it is hidden",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, adapter, err := openProfile(cfg, prefsProfile)
		if err != nil {
			return err
		}
		defer database.Close()

		ctrl := newController(cmd.Context(), cfg, adapter)
		out := cmd.OutOrStdout()
		for _, c := range ctrl.Categories() {
			state := "visible"
			if ctrl.IsHidden(c) {
				state = "hidden"
			}
			fmt.Fprintf(out, "%-12s %s\n", c, state)
		}
		return nil
	},
}

func newToggleCmd(use, short string, hide bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <category>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			database, adapter, err := openProfile(cfg, prefsProfile)
			if err != nil {
				return err
			}
			defer database.Close()

			category := args[0]
			ctrl := newController(cmd.Context(), cfg, adapter)
			if err := ctrl.Validate(category); err != nil {
				return fmt.Errorf("%w (known: %v)", err, ctrl.Categories())
			}
			if hide {
				err = ctrl.Hide(cmd.Context(), category)
			} else {
				err = ctrl.Show(cmd.Context(), category)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hidden: %v\n", ctrl.Hidden())
			return nil
		},
	}
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored preference so default_hidden applies again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, adapter, err := openProfile(cfg, prefsProfile)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := newController(cmd.Context(), cfg, adapter).Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Preferences for profile %q cleared\n", prefsProfile)
		return nil
	},
}

func init() {
	prefsCmd.PersistentFlags().StringVar(&prefsProfile, "profile", kvstore.DefaultScope, "preferences profile")
	prefsCmd.AddCommand(prefsListCmd)
	prefsCmd.AddCommand(newToggleCmd("hide", "Hide a framework category", true))
	prefsCmd.AddCommand(newToggleCmd("show", "Show a hidden framework category", false))
	prefsCmd.AddCommand(prefsResetCmd)
	rootCmd.AddCommand(prefsCmd)
}
