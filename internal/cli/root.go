// Package cli implements the minishare command.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hailam/minishare/internal/board"
	"github.com/hailam/minishare/internal/config"
	"github.com/hailam/minishare/internal/logging"
	"github.com/hailam/minishare/internal/share"
	"github.com/hailam/minishare/internal/storage"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	version    string
	configPath string
	jsonOut    bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the minishare command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "minishare",
		Short: "Share 5x4 chess positions as short URL-safe codes",
		Long: `minishare turns a 5x4 mini chess position into a code of at most
twelve URL-safe characters and back. Positions are given as placement
text ("2k1/4/4/4/2K1") or as a JSON array of rows.

Codec failures are reported by kind: InvalidBoardShape, InvalidPieceSymbol,
InvalidCodeCharset, InvalidCodeLength, CodeOverflow or NonCanonicalCode
(a code with a leading "A"). They exit with status 1.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: ./minishare.yaml or the user config dir)")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output as JSON")

	root.AddCommand(
		a.versionCmd(),
		a.encodeCmd(),
		a.decodeCmd(),
		a.statsCmd(),
		a.urlCmd(),
		a.previewCmd(),
		a.saveCmd(),
		a.listCmd(),
		a.showCmd(),
		a.deleteCmd(),
	)

	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(version string) int {
	root := NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode separates bad input from environment failures.
func exitCode(err error) int {
	var se *share.SharingError
	if errors.As(err, &se) || errors.Is(err, storage.ErrNotFound) || errors.Is(err, errUsage) {
		return exitUserError
	}
	return exitSysError
}

var errUsage = errors.New("usage")

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// openStore opens the configured store. The caller must close it.
func (a *app) openStore() (storage.Store, error) {
	store, err := storage.Open(a.cfg.Storage.Backend, a.cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.logger.Debug("storage opened",
		zap.String("backend", a.cfg.Storage.Backend),
		zap.String("dir", a.cfg.Storage.Dir))
	return store, nil
}

// shareURL returns the configured link for code, or "" without a base URL.
func (a *app) shareURL(code string) string {
	if a.cfg.Server.BaseURL == "" {
		return ""
	}
	u, err := share.ShareURL(a.cfg.Server.BaseURL, code)
	if err != nil {
		a.logger.Warn("build share url", zap.Error(err))
		return ""
	}
	return u
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]string{"version": a.version})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "minishare %s\n", a.version)
			return nil
		},
	}
}

// parseRows reads a board argument in wire form: a JSON array of rows when
// it starts with '[', placement text otherwise. JSON rows are returned as
// given, without shape or symbol checks.
func parseRows(arg string) ([][]string, error) {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "[") {
		var rows [][]string
		if err := json.Unmarshal([]byte(arg), &rows); err != nil {
			return nil, fmt.Errorf("%w: board JSON: %v", errUsage, err)
		}
		return rows, nil
	}

	b, err := board.ParsePlacement(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return b.Rows(), nil
}

// parseBoard reads and validates a board argument.
func parseBoard(arg string) (board.Board, error) {
	rows, err := parseRows(arg)
	if err != nil {
		return board.Empty(), err
	}
	return share.ValidateBoard(rows)
}

// applyEdits applies "square=symbol" edits such as "c5=k" to b. An empty
// symbol ("c5=") clears the square.
func applyEdits(b *board.Board, edits []string) error {
	for _, edit := range edits {
		name, symbol, ok := strings.Cut(edit, "=")
		if !ok {
			return fmt.Errorf("%w: edit %q is not square=piece", errUsage, edit)
		}
		sq, err := board.ParseSquare(strings.TrimSpace(name))
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		p, ok := board.PieceFromSymbol(strings.TrimSpace(symbol))
		if !ok {
			return fmt.Errorf("%w: invalid piece %q on %s", errUsage, symbol, sq)
		}
		b.SetPiece(sq, p)
	}
	return nil
}

// parseCode accepts a bare code or a shared URL.
func parseCode(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if strings.Contains(arg, "?") || strings.Contains(arg, "://") {
		return share.CodeFromURL(arg)
	}
	return share.ValidateCode(arg)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
