package cli

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/minishare/internal/share"
	"github.com/hailam/minishare/internal/storage"
)

const kingsCode = "0hXKCCuwuMo"

// isolate points config and storage at temporary directories.
func isolate(t *testing.T, backend string) {
	t.Helper()
	t.Setenv("MINISHARE_CONFIG_DIR", t.TempDir())
	t.Setenv("MINISHARE_STORAGE_BACKEND", backend)
	t.Setenv("MINISHARE_STORAGE_DIR", t.TempDir())
	t.Setenv("MINISHARE_SERVER_BASE_URL", "https://chess.example/editor")
	t.Setenv("MINISHARE_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncode(t *testing.T) {
	isolate(t, "badger")

	out, err := run(t, "encode", "2k1/4/4/4/2K1")
	require.NoError(t, err)
	assert.Contains(t, out, kingsCode)
	assert.Contains(t, out, "https://chess.example/editor?position="+kingsCode)

	out, err = run(t, "--json", "encode", `[["","","k",""],["","","",""],["","","",""],["","","",""],["","","K",""]]`)
	require.NoError(t, err)

	var enc encodeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &enc))
	assert.Equal(t, kingsCode, enc.Code)
}

func TestEncodeErrors(t *testing.T) {
	isolate(t, "badger")

	_, err := run(t, "encode", "p3/4/4/4/4")
	assert.ErrorIs(t, err, share.ErrCodeOverflow)
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = run(t, "encode", `[["x","","",""],["","","",""],["","","",""],["","","",""],["","","",""]]`)
	assert.ErrorIs(t, err, share.ErrInvalidPieceSymbol)

	_, err = run(t, "encode", "4/4/4")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestEncodeWithEdits(t *testing.T) {
	isolate(t, "badger")

	out, err := run(t, "--json", "encode", "4/4/4/4/4", "--set", "c5=k", "--set", "c1=K")
	require.NoError(t, err)
	var enc encodeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &enc))
	assert.Equal(t, kingsCode, enc.Code)

	// Clearing both kings gives the empty board.
	out, err = run(t, "--json", "encode", "2k1/4/4/4/2K1", "--set", "c5=", "--set", "c1=")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &enc))
	assert.Equal(t, "A", enc.Code)

	for _, edit := range []string{"e1=K", "c5=x", "c5k"} {
		_, err := run(t, "encode", "4/4/4/4/4", "--set", edit)
		require.Error(t, err, edit)
		assert.Equal(t, exitUserError, exitCode(err), edit)
	}
}

func TestDecode(t *testing.T) {
	isolate(t, "badger")

	out, err := run(t, "--json", "decode", kingsCode)
	require.NoError(t, err)

	var dec decodeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &dec))
	assert.Equal(t, "2k1/4/4/4/2K1", dec.Placement)
	assert.Equal(t, "k", dec.Board[0][2])
	assert.Equal(t, "K", dec.Board[4][2])
	assert.Equal(t, 2, dec.Pieces)

	out, err = run(t, "decode", "https://chess.example/editor?position="+kingsCode)
	require.NoError(t, err)
	assert.Contains(t, out, "2k1/4/4/4/2K1")

	_, err = run(t, "decode", "invalid@chars!")
	assert.ErrorIs(t, err, share.ErrInvalidCodeCharset)
}

func TestStats(t *testing.T) {
	isolate(t, "badger")

	out, err := run(t, "--json", "stats", "2k1/4/4/4/2K1")
	require.NoError(t, err)

	var stats share.Statistics
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, kingsCode, stats.SharingCode)
	assert.True(t, stats.RoundTripSuccess)
	assert.True(t, stats.URLSafe)
}

func TestStatsReportsMalformedRows(t *testing.T) {
	isolate(t, "badger")

	tests := []struct {
		name string
		rows string
		kind share.ErrorKind
	}{
		{"bad symbol", `[["x","","",""],["","","",""],["","","",""],["","","",""],["","","",""]]`, share.InvalidPieceSymbol},
		{"six rows", `[["","","",""],["","","",""],["","","",""],["","","",""],["","","",""],["","","",""]]`, share.InvalidBoardShape},
		{"empty", `[]`, share.InvalidBoardShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "--json", "stats", tt.rows)
			require.NoError(t, err)
			assert.Contains(t, out, `"kind": "`+tt.kind.String()+`"`)
			assert.Contains(t, out, `"roundTripSuccess": false`)
		})
	}
}

func TestURL(t *testing.T) {
	isolate(t, "badger")

	out, err := run(t, "url", "--base", "https://example.com/?lang=en", "B")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/?lang=en&position=B\n", out)

	_, err = run(t, "url", "AB")
	assert.ErrorIs(t, err, share.ErrNonCanonicalCode)
}

func TestPreview(t *testing.T) {
	isolate(t, "badger")
	path := filepath.Join(t.TempDir(), "kings.png")

	_, err := run(t, "preview", kingsCode, "-o", path, "--size", "20")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
}

func TestPositions(t *testing.T) {
	for _, backend := range []string{"badger", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			isolate(t, backend)

			out, err := run(t, "--json", "save", "--name", "kings", "2k1/4/4/4/2K1")
			require.NoError(t, err)
			var saved positionOutput
			require.NoError(t, json.Unmarshal([]byte(out), &saved))
			assert.Equal(t, kingsCode, saved.Code)
			assert.Equal(t, "kings", saved.Name)
			assert.NotEmpty(t, saved.ID)

			out, err = run(t, "--json", "list")
			require.NoError(t, err)
			var list []positionOutput
			require.NoError(t, json.Unmarshal([]byte(out), &list))
			require.Len(t, list, 1)
			assert.Equal(t, saved.ID, list[0].ID)

			out, err = run(t, "show", kingsCode)
			require.NoError(t, err)
			assert.Contains(t, out, "kings")

			_, err = run(t, "delete", kingsCode)
			require.NoError(t, err)

			_, err = run(t, "show", kingsCode)
			assert.ErrorIs(t, err, storage.ErrNotFound)
			assert.Equal(t, exitUserError, exitCode(err))
		})
	}
}

func TestVersion(t *testing.T) {
	isolate(t, "badger")

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "minishare test\n", out)
}

func TestRenderBoard(t *testing.T) {
	b, err := share.Decode(kingsCode)
	require.NoError(t, err)

	out := renderBoard(b)
	assert.Contains(t, out, "k")
	assert.Contains(t, out, "K")
	assert.Contains(t, out, "5")
	assert.Contains(t, out, "d")
}
