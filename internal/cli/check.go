package cli

import (
	"fmt"

	"staff_portal/internal/models"

	"github.com/spf13/cobra"
)

// Problem is one inconsistency found in a snapshot.
type Problem struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

type checkReport struct {
	Users     int       `json:"users"`
	Employees int       `json:"employees"`
	Managers  int       `json:"managers"`
	Admins    int       `json:"admins"`
	Messages  int       `json:"messages"`
	Problems  []Problem `json:"problems"`
}

func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the stored document for inconsistencies",
		Long: `Check loads the document and reports duplicate emails, duplicate ids,
verified accounts that still carry a verification token and id sequences
that fall behind the stored records. It exits non-zero when it finds any.`,
		Args: cobra.NoArgs,
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

			report := checkReport{
				Users:     len(snap.Users),
				Employees: len(snap.Employees),
				Managers:  len(snap.Managers),
				Admins:    len(snap.Admins),
				Messages:  len(snap.Messages),
				Problems:  Check(snap),
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				if err := writeJSON(out, report); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "users=%d employees=%d managers=%d admins=%d messages=%d\n",
					report.Users, report.Employees, report.Managers, report.Admins, report.Messages)
				for _, p := range report.Problems {
					fmt.Fprintf(out, "%s: %s\n", p.Kind, p.Detail)
				}
				if len(report.Problems) == 0 {
					fmt.Fprintln(out, "ok")
				}
			}

			if len(report.Problems) > 0 {
				return fmt.Errorf("%d problem(s) found", len(report.Problems))
			}

			return nil
		},
	}
}

// Check returns every inconsistency in snap. A nil result means the document is sound.
func Check(snap *models.Snapshot) []Problem {
	var problems []Problem

	emails := make(map[string]bool, len(snap.Users))
	for _, u := range snap.Users {
		if emails[u.Email] {
			problems = append(problems, Problem{Kind: "duplicate-email", Detail: u.Email})
		}
		emails[u.Email] = true

		if u.Verified && u.VerifyToken != nil {
			problems = append(problems, Problem{Kind: "stale-verify-token", Detail: u.Email})
		}
	}

	var maxEmployee int64
	employeeIDs := make(map[int64]bool, len(snap.Employees))
	for _, e := range snap.Employees {
		if employeeIDs[e.ID] {
			problems = append(problems, Problem{Kind: "duplicate-employee-id", Detail: fmt.Sprint(e.ID)})
		}
		employeeIDs[e.ID] = true
		maxEmployee = max(maxEmployee, e.ID)
	}

	var maxMessage int64
	messageIDs := make(map[int64]bool, len(snap.Messages))
	for _, m := range snap.Messages {
		if messageIDs[m.ID] {
			problems = append(problems, Problem{Kind: "duplicate-message-id", Detail: fmt.Sprint(m.ID)})
		}
		messageIDs[m.ID] = true
		maxMessage = max(maxMessage, m.ID)
	}

	if snap.Sequences.Employees != 0 && snap.Sequences.Employees < maxEmployee {
		problems = append(problems, Problem{
			Kind:   "employee-sequence-behind",
			Detail: fmt.Sprintf("sequence %d < id %d", snap.Sequences.Employees, maxEmployee),
		})
	}

	if snap.Sequences.Messages != 0 && snap.Sequences.Messages < maxMessage {
		problems = append(problems, Problem{
			Kind:   "message-sequence-behind",
			Detail: fmt.Sprintf("sequence %d < id %d", snap.Sequences.Messages, maxMessage),
		})
	}

	return problems
}
