package cli

import (
	"strconv"

	"staff_portal/internal/messaging"

	"github.com/spf13/cobra"
)

func NewMessagesCommand(rootOpts *RootOptions) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List messages sent or received by a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := rootOpts.open(cmd.Context(), rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := messaging.New(rootOpts.logger(cmd), store).ListFor(cmd.Context(), user)
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), list)
			}

			rows := make([][]string, 0, len(list))
			for _, m := range list {
				rows = append(rows, []string{strconv.FormatInt(m.ID, 10), m.Timestamp, m.From, m.To, m.Message})
			}

			return writeTable(cmd.OutOrStdout(), []string{"ID", "TIMESTAMP", "FROM", "TO", "MESSAGE"}, rows)
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "email of the sender or recipient (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
