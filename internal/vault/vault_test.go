package vault_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lifeplanner/internal/fs"
	"lifeplanner/internal/vault"
)

func newStorage(t *testing.T) *vault.Storage {
	t.Helper()

	return vault.NewStorage(fs.NewMem(), t.TempDir())
}

func Test_Storage_Read_Returns_Empty_String_When_File_Missing(t *testing.T) {
	t.Parallel()

	content, err := newStorage(t).Read("LifePlanner/LifePlanner - Goals.md")

	require.NoError(t, err)
	require.Empty(t, content)
}

func Test_Storage_Write_And_Read_Round_Trip(t *testing.T) {
	t.Parallel()

	storage := newStorage(t)

	require.NoError(t, storage.Write("Planner/doc.md", "# Title\n\nbody\n"))

	content, err := storage.Read("Planner/doc.md")
	require.NoError(t, err)
	require.Equal(t, "# Title\n\nbody\n", content)
}

func Test_Storage_Write_Creates_Parent_Folders(t *testing.T) {
	t.Parallel()

	storage := newStorage(t)

	require.NoError(t, storage.Write("a/b/c/doc.md", "content"))

	exists, err := storage.Exists("a/b/c/doc.md")
	require.NoError(t, err)
	require.True(t, exists)
}

func Test_Storage_Read_Normalizes_CRLF_Line_Endings(t *testing.T) {
	t.Parallel()

	storage := newStorage(t)

	require.NoError(t, storage.Write("doc.md", "line one\r\nline two\rline three\n"))

	content, err := storage.Read("doc.md")
	require.NoError(t, err)
	require.Equal(t, "line one\nline two\nline three\n", content)
}

func Test_Storage_Rejects_Unsafe_Paths(t *testing.T) {
	t.Parallel()

	storage := newStorage(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "absolute path", path: "/etc/passwd"},
		{name: "parent traversal", path: "../outside.md"},
		{name: "embedded traversal", path: "Planner/../../outside.md"},
		{name: "empty path", path: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, readErr := storage.Read(tt.path)
			require.ErrorIs(t, readErr, vault.ErrUnsafePath)

			writeErr := storage.Write(tt.path, "x")
			require.ErrorIs(t, writeErr, vault.ErrUnsafePath)

			_, existsErr := storage.Exists(tt.path)
			require.ErrorIs(t, existsErr, vault.ErrUnsafePath)
		})
	}
}

func Test_Storage_Exists_Reports_Missing_File(t *testing.T) {
	t.Parallel()

	exists, err := newStorage(t).Exists("nope.md")

	require.NoError(t, err)
	require.False(t, exists)
}
