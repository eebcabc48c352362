package cli

import (
	"strconv"
	"strings"

	"staff_portal/internal/models"

	"github.com/spf13/cobra"
)

// userView leaves out passwords and tokens.
type userView struct {
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	Verified bool        `json:"verified"`
	Pending  []string    `json:"pending,omitempty"`
}

func NewUsersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := rootOpts.open(cmd.Context(), rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			defer closeStore()

			snap, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}

			views := make([]userView, 0, len(snap.Users))
			for _, u := range snap.Users {
				v := userView{Email: u.Email, Role: u.Role, Verified: u.Verified}
				if u.VerifyToken != nil {
					v.Pending = append(v.Pending, "verification")
				}
				if u.ResetToken != nil {
					v.Pending = append(v.Pending, "reset")
				}
				views = append(views, v)
			}

			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), views)
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				pending := "-"
				if len(v.Pending) > 0 {
					pending = strings.Join(v.Pending, ",")
				}
				rows = append(rows, []string{v.Email, string(v.Role), strconv.FormatBool(v.Verified), pending})
			}

			return writeTable(cmd.OutOrStdout(), []string{"EMAIL", "ROLE", "VERIFIED", "PENDING"}, rows)
		},
	}
}
