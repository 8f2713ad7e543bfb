package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lifeplanner/internal/fs"
)

// Both implementations must satisfy the same observable contract, so the
// suite runs against each.
func implementations(t *testing.T) map[string]struct {
	fsys fs.FS
	root string
} {
	t.Helper()

	return map[string]struct {
		fsys fs.FS
		root string
	}{
		"real": {fsys: fs.NewReal(), root: t.TempDir()},
		"mem":  {fsys: fs.NewMem(), root: t.TempDir()},
	}
}

func Test_FS_ReadFile_Fails_With_NotExist_When_File_Missing(t *testing.T) {
	t.Parallel()

	for name, impl := range implementations(t) {
		impl := impl
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := impl.fsys.ReadFile(filepath.Join(impl.root, "missing.md"))
			require.True(t, os.IsNotExist(err))
		})
	}
}

func Test_FS_WriteFileAtomic_And_ReadFile_Round_Trip(t *testing.T) {
	t.Parallel()

	for name, impl := range implementations(t) {
		impl := impl
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(impl.root, "doc.md")
			require.NoError(t, impl.fsys.WriteFileAtomic(path, []byte("content"), 0o600))

			data, err := impl.fsys.ReadFile(path)
			require.NoError(t, err)
			require.Equal(t, "content", string(data))
		})
	}
}

func Test_FS_WriteFileAtomic_Replaces_Existing_Content(t *testing.T) {
	t.Parallel()

	for name, impl := range implementations(t) {
		impl := impl
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(impl.root, "doc.md")
			require.NoError(t, impl.fsys.WriteFileAtomic(path, []byte("first"), 0o600))
			require.NoError(t, impl.fsys.WriteFileAtomic(path, []byte("second"), 0o600))

			data, err := impl.fsys.ReadFile(path)
			require.NoError(t, err)
			require.Equal(t, "second", string(data))
		})
	}
}

func Test_FS_Exists_Distinguishes_Present_And_Missing(t *testing.T) {
	t.Parallel()

	for name, impl := range implementations(t) {
		impl := impl
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(impl.root, "doc.md")

			exists, err := impl.fsys.Exists(path)
			require.NoError(t, err)
			require.False(t, exists)

			require.NoError(t, impl.fsys.WriteFileAtomic(path, []byte("x"), 0o600))

			exists, err = impl.fsys.Exists(path)
			require.NoError(t, err)
			require.True(t, exists)
		})
	}
}

func Test_FS_MkdirAll_Creates_Nested_Folders(t *testing.T) {
	t.Parallel()

	for name, impl := range implementations(t) {
		impl := impl
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			nested := filepath.Join(impl.root, "a", "b", "c")
			require.NoError(t, impl.fsys.MkdirAll(nested, 0o750))

			info, err := impl.fsys.Stat(nested)
			require.NoError(t, err)
			require.True(t, info.IsDir())
		})
	}
}

func Test_FS_Remove_Deletes_File(t *testing.T) {
	t.Parallel()

	for name, impl := range implementations(t) {
		impl := impl
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(impl.root, "doc.md")
			require.NoError(t, impl.fsys.WriteFileAtomic(path, []byte("x"), 0o600))
			require.NoError(t, impl.fsys.Remove(path))

			exists, err := impl.fsys.Exists(path)
			require.NoError(t, err)
			require.False(t, exists)
		})
	}
}

func Test_Mem_Paths_Lists_Stored_Files(t *testing.T) {
	t.Parallel()

	mem := fs.NewMem()
	require.NoError(t, mem.WriteFileAtomic("a/doc.md", []byte("x"), 0o600))
	require.NoError(t, mem.WriteFileAtomic("b/doc.md", []byte("y"), 0o600))

	require.ElementsMatch(t, []string{"a/doc.md", "b/doc.md"}, mem.Paths())
}
