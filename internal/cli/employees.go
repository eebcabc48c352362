package cli

import (
	"strconv"

	"staff_portal/internal/directory"

	"github.com/spf13/cobra"
)

func NewEmployeesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "List the employee directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := rootOpts.open(cmd.Context(), rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			defer closeStore()

			list, err := directory.New(rootOpts.logger(cmd), store).List(cmd.Context())
			if err != nil {
				return err
			}

			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), list)
			}

			rows := make([][]string, 0, len(list))
			for _, e := range list {
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10), e.Name, e.Email, e.Department, e.Position, e.Salary,
				})
			}

			return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "EMAIL", "DEPARTMENT", "POSITION", "SALARY"}, rows)
		},
	}
}
