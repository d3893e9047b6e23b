package shader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildErrorMessage(t *testing.T) {
	tests := []struct {
		stage string
		want  string
	}{
		{StageVertex, "vertex shader: 0:3: syntax error"},
		{StageFragment, "fragment shader: 0:3: syntax error"},
		{StageLink, "link: 0:3: syntax error"},
	}
	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			var err error = &BuildError{Stage: tt.stage, Log: "0:3: syntax error"}
			assert.Equal(t, tt.want, err.Error())

			var be *BuildError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, tt.stage, be.Stage)
		})
	}
}

func TestCleanLog(t *testing.T) {
	assert.Equal(t, "error", cleanLog([]byte("error\n\x00\x00")))
	assert.Equal(t, "(no info log)", cleanLog([]byte{0}))
	assert.Equal(t, "(no info log)", cleanLog(nil))
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	vs := filepath.Join(dir, "a.vert")
	fs := filepath.Join(dir, "a.frag")
	require.NoError(t, os.WriteFile(vs, []byte("void main(){}"), 0o644))
	require.NoError(t, os.WriteFile(fs, []byte("out vec4 c;"), 0o644))

	src, err := ReadSource(vs, fs)
	require.NoError(t, err)
	assert.Equal(t, "void main(){}", src.Vertex)
	assert.Equal(t, "out vec4 c;", src.Fragment)

	_, err = ReadSource(vs, filepath.Join(dir, "missing.frag"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "model.frag")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o644))

	w, err := NewWatcher(watched)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("b"), 0o644))

	want, err := filepath.Abs(watched)
	require.NoError(t, err)
	select {
	case got := <-w.changes:
		assert.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherPollDedups(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "model.vert")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o644))

	w, err := NewWatcher(watched)
	require.NoError(t, err)
	defer w.Close()

	assert.Empty(t, w.Poll())

	w.changes <- watched
	w.changes <- watched
	assert.Equal(t, []string{watched}, w.Poll())
	assert.Empty(t, w.Poll())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "a.vert"))
	assert.Error(t, err)
}
