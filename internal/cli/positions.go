package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hailam/minishare/internal/share"
	"github.com/hailam/minishare/internal/storage"
)

type positionOutput struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Placement string    `json:"placement"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *app) positionOutput(p *storage.Position) positionOutput {
	return positionOutput{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Placement: p.Placement,
		URL:       a.shareURL(p.Code),
		CreatedAt: p.CreatedAt,
	}
}

// withStore runs fn against the configured store and closes it afterwards.
func (a *app) withStore(fn func(storage.Store) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (a *app) saveCmd() *cobra.Command {
	var name string
	var edits []string

	cmd := &cobra.Command{
		Use:   "save <placement|rows-json>",
		Short: "Save a position under its sharing code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBoard(args[0])
			if err != nil {
				return err
			}
			if err := applyEdits(&b, edits); err != nil {
				return err
			}
			return a.withStore(func(store storage.Store) error {
				pos, err := store.Save(name, b)
				if err != nil {
					return err
				}
				if a.jsonOut {
					return printJSON(cmd.OutOrStdout(), a.positionOutput(pos))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%s)\n", pos.Code, pos.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (default: the code)")
	cmd.Flags().StringArrayVar(&edits, "set", nil, "place a piece, e.g. c5=k (repeatable; c5= clears)")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved positions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store storage.Store) error {
				positions, err := store.List()
				if err != nil {
					return err
				}

				if a.jsonOut {
					out := make([]positionOutput, 0, len(positions))
					for _, p := range positions {
						out = append(out, a.positionOutput(p))
					}
					return printJSON(cmd.OutOrStdout(), out)
				}
				if len(positions) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("no saved positions"))
					return nil
				}
				for _, p := range positions {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s  %-24s  %s\n", p.Code, p.Name, p.Placement)
				}
				return nil
			})
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code|url>",
		Short: "Show a saved position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(store storage.Store) error {
				pos, err := store.Get(code)
				if err != nil {
					return err
				}
				if a.jsonOut {
					return printJSON(cmd.OutOrStdout(), a.positionOutput(pos))
				}

				b, err := pos.Board()
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintln(w, titleStyle.Render(pos.Name))
				fmt.Fprintln(w, renderBoard(b))
				fmt.Fprintf(w, "code:     %s\n", pos.Code)
				fmt.Fprintf(w, "saved:    %s\n", pos.CreatedAt.Local().Format(time.DateTime))
				if u := a.shareURL(pos.Code); u != "" {
					fmt.Fprintf(w, "url:      %s\n", u)
				}
				return nil
			})
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <code>",
		Short: "Delete a saved position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := share.ValidateCode(args[0])
			if err != nil {
				return err
			}
			return a.withStore(func(store storage.Store) error {
				if err := store.Delete(code); err != nil {
					return err
				}
				if a.jsonOut {
					return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": code})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", code)
				return nil
			})
		},
	}
}
