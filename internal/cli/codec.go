package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hailam/minishare/internal/board"
	"github.com/hailam/minishare/internal/preview"
	"github.com/hailam/minishare/internal/share"
)

type encodeOutput struct {
	Code string `json:"code"`
	URL  string `json:"url,omitempty"`
}

type decodeOutput struct {
	Code      string     `json:"code"`
	Placement string     `json:"placement"`
	Board     [][]string `json:"board"`
	Pieces    int        `json:"pieces"`
}

func (a *app) encodeCmd() *cobra.Command {
	var edits []string

	cmd := &cobra.Command{
		Use:   "encode <placement|rows-json>",
		Short: "Encode a position into a sharing code",
		Example: `  minishare encode 2k1/4/4/4/2K1
  minishare encode 4/4/4/4/4 --set c5=k --set c1=K
  minishare encode '[["","","k",""],["","","",""],["","","",""],["","","",""],["","","K",""]]'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBoard(args[0])
			if err != nil {
				return err
			}
			if err := applyEdits(&b, edits); err != nil {
				return err
			}
			code, err := share.EncodeBoard(b)
			if err != nil {
				return err
			}

			out := encodeOutput{Code: code, URL: a.shareURL(code)}
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Code)
			if out.URL != "" {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(out.URL))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&edits, "set", nil, "place a piece, e.g. c5=k (repeatable; c5= clears)")
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <code|url>",
		Short: "Decode a sharing code or shared URL into a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0])
			if err != nil {
				return err
			}
			b, err := share.Decode(code)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), decodeOutput{
					Code:      code,
					Placement: b.Placement(),
					Board:     b.Rows(),
					Pieces:    b.Count(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(code))
			fmt.Fprintln(cmd.OutOrStdout(), renderBoard(b))
			fmt.Fprintln(cmd.OutOrStdout(), b.Placement())
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <placement|rows-json>",
		Short: "Report how a position survives an encode/decode round trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := parseRows(args[0])
			if err != nil {
				return err
			}
			stats := share.SharingStatistics(rows)

			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), stats)
			}
			w := cmd.OutOrStdout()
			if stats.Error != nil {
				fmt.Fprintln(w, errorStyle.Render(stats.Error.Error()))
				return nil
			}
			fmt.Fprintf(w, "code:        %s\n", stats.SharingCode)
			fmt.Fprintf(w, "length:      %d\n", stats.CodeLength)
			fmt.Fprintf(w, "round trip:  %s\n", yesNo(stats.RoundTripSuccess))
			fmt.Fprintf(w, "url safe:    %s\n", yesNo(stats.URLSafe))
			return nil
		},
	}
}

func (a *app) urlCmd() *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "url <code>",
		Short: "Build the shareable link for a code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if base == "" {
				base = a.cfg.Server.BaseURL
			}
			if base == "" {
				return fmt.Errorf("%w: no base URL (set --base or server.base_url)", errUsage)
			}
			u, err := share.ShareURL(base, args[0])
			if err != nil {
				return err
			}

			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), encodeOutput{Code: args[0], URL: u})
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "page that opens ?position= links (default: server.base_url)")
	return cmd
}

func (a *app) previewCmd() *cobra.Command {
	var output string
	var size int

	cmd := &cobra.Command{
		Use:   "preview <code|url>",
		Short: "Render a code to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := parseCode(args[0])
			if err != nil {
				return err
			}
			b, err := share.Decode(code)
			if err != nil {
				return err
			}

			if size == 0 {
				size = a.cfg.Preview.SquareSize
			}
			if output == "" {
				output = code + ".png"
			}
			if err := writePreview(output, size, b, code); err != nil {
				return err
			}
			a.logger.Debug("preview written", zap.String("file", output), zap.Int("square_size", size))

			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]string{"code": code, "file": output})
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <code>.png)")
	cmd.Flags().IntVar(&size, "size", 0, "square size in pixels (default: preview.square_size)")
	return cmd
}

func writePreview(path string, size int, b board.Board, caption string) error {
	renderer, err := preview.NewRenderer(size)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := renderer.WritePNG(f, b, caption); err != nil {
		f.Close()
		return fmt.Errorf("write preview: %w", err)
	}
	return f.Close()
}

func yesNo(ok bool) string {
	if ok {
		return okStyle.Render("yes")
	}
	return errorStyle.Render("no")
}
