package history

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/daikw/ovasettings/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir     string
	store   *settings.Store
	config  *settings.Config
	reloads int
	manager *Manager
}

func newTestEnv(t *testing.T, files map[string]string) *testEnv {
	t.Helper()
	root := t.TempDir()
	env := &testEnv{
		dir:   filepath.Join(root, "history"),
		store: settings.NewStore(filepath.Join(root, "config.json")),
	}
	env.config = env.store.Load()

	if len(files) > 0 {
		require.NoError(t, os.MkdirAll(env.dir, 0755))
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(env.dir, name), []byte(content), 0644))
		}
	}

	env.manager = NewManager(env.dir, env.config, env.store, WithReloader(ReloaderFunc(func() {
		env.reloads++
	})))
	return env
}

// persisted reads current_conversation back from disk
func (e *testEnv) persisted(t *testing.T) string {
	t.Helper()
	config, err := e.store.Read()
	require.NoError(t, err)
	name, ok := config.CurrentConversation()
	require.True(t, ok, "current_conversation not saved")
	return name
}

func (e *testEnv) files(t *testing.T) []string {
	t.Helper()
	names, err := e.manager.files()
	require.NoError(t, err)
	return names
}

func TestCreate_EmptyDirectory(t *testing.T) {
	env := newTestEnv(t, nil)

	name, err := env.manager.Create()
	require.NoError(t, err)
	assert.Equal(t, "1.json", name)

	data, err := os.ReadFile(filepath.Join(env.dir, "1.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	current, ok := env.manager.Current()
	assert.True(t, ok)
	assert.Equal(t, "1.json", current)
	assert.Equal(t, "1.json", env.persisted(t))
	assert.Equal(t, 1, env.reloads)
}

func TestCreate_NextNumber(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]", "2.json": "[]"})

	name, err := env.manager.Create()
	require.NoError(t, err)
	assert.Equal(t, "3.json", name)
}

func TestCreate_FillsGap(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]", "3.json": "[]"})

	name, err := env.manager.Create()
	require.NoError(t, err)
	assert.Equal(t, "2.json", name)
}

func TestList_StringOrder(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"2.json":  `[]`,
		"10.json": `[{"content": "hi"}]`,
	})

	summaries, err := env.manager.List()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "10.json", summaries[0].Filename)
	assert.Equal(t, "hi", summaries[0].Preview)
	assert.Equal(t, 1, summaries[0].Messages)
	assert.Equal(t, "2.json", summaries[1].Filename)
	assert.Equal(t, EmptyPreview, summaries[1].Preview)
}

func TestList_SelfHealsStaleSelection(t *testing.T) {
	env := newTestEnv(t, map[string]string{"2.json": "[]", "10.json": "[]"})
	env.config.SetCurrentConversation("7.json")

	summaries, err := env.manager.List()
	require.NoError(t, err)

	current, _ := env.manager.Current()
	assert.Equal(t, "10.json", current)
	assert.Equal(t, "10.json", env.persisted(t))
	assert.True(t, summaries[0].Current)
	assert.False(t, summaries[1].Current)
	assert.Equal(t, 0, env.reloads, "listing does not notify the session")
}

func TestList_SelfHealsSelectionOutsideListing(t *testing.T) {
	for _, current := range []string{"../config.json", "notes.txt", "broken.json"} {
		t.Run(current, func(t *testing.T) {
			env := newTestEnv(t, map[string]string{"1.json": "[]", "notes.txt": "hi", "broken.json": "{"})
			env.config.SetCurrentConversation(current)
			require.NoError(t, env.store.Write(env.config))

			summaries, err := env.manager.List()
			require.NoError(t, err)
			require.Len(t, summaries, 1)
			assert.True(t, summaries[0].Current)
			assert.Equal(t, "1.json", env.persisted(t))
		})
	}
}

func TestList_SelfHealsUnsetSelection(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]"})

	_, err := env.manager.List()
	require.NoError(t, err)
	assert.Equal(t, "1.json", env.persisted(t))
}

func TestList_KeepsValidSelection(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]", "2.json": "[]"})
	env.config.SetCurrentConversation("2.json")

	summaries, err := env.manager.List()
	require.NoError(t, err)
	assert.True(t, summaries[1].Current)

	_, err = env.store.Read()
	assert.True(t, errors.Is(err, os.ErrNotExist), "valid selection is not re-saved")
}

func TestList_SkipsMalformedFiles(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"1.json": `{broken`,
		"2.json": `[{"content": "ok"}]`,
		"3.json": `{"content": "not an array"}`,
	})

	summaries, err := env.manager.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "2.json", summaries[0].Filename)

	// Malformed files stay on disk
	assert.Equal(t, []string{"1.json", "2.json", "3.json"}, env.files(t))

	current, _ := env.manager.Current()
	assert.Equal(t, "2.json", current)
}

func TestList_EmptyDirectory(t *testing.T) {
	env := newTestEnv(t, nil)

	summaries, err := env.manager.List()
	require.NoError(t, err)
	assert.Empty(t, summaries)

	_, ok := env.manager.Current()
	assert.False(t, ok)

	info, err := os.Stat(env.dir)
	require.NoError(t, err, "history directory is created on demand")
	assert.True(t, info.IsDir())
}

func TestList_IgnoresOtherFiles(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]", "notes.txt": "x"})
	require.NoError(t, os.Mkdir(filepath.Join(env.dir, "5.json"), 0755))

	summaries, err := env.manager.List()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "1.json", summaries[0].Filename)
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("a", 60)
	assert.Equal(t, strings.Repeat("a", 50)+"...", preview([]Message{{Content: "first"}, {Content: long}}))
	assert.Equal(t, strings.Repeat("a", 50), preview([]Message{{Content: strings.Repeat("a", 50)}}))
	assert.Equal(t, "last", preview([]Message{{Content: "first"}, {Content: "last"}}))
	assert.Equal(t, EmptyPreview, preview(nil))

	// Cut on runes, not bytes
	kana := strings.Repeat("あ", 55)
	assert.Equal(t, strings.Repeat("あ", 50)+"...", preview([]Message{{Content: kana}}))
}

func TestSelect(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]", "2.json": "[]"})

	require.NoError(t, env.manager.Select("2.json"))
	assert.Equal(t, "2.json", env.persisted(t))
	assert.Equal(t, 1, env.reloads)

	err := env.manager.Select("9.json")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "2.json", env.persisted(t))

	assert.Error(t, env.manager.Select("../config.json"))
	assert.Equal(t, 1, env.reloads)
}

func TestSelect_WithoutReloader(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "history")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.json"), []byte("[]"), 0644))

	store := settings.NewStore(filepath.Join(root, "config.json"))
	manager := NewManager(dir, store.Load(), store)

	assert.NotPanics(t, func() {
		require.NoError(t, manager.Select("1.json"))
	})
}

func TestDelete_SelectsFirstRemaining(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]", "2.json": "[]"})
	require.NoError(t, env.manager.Select("1.json"))

	require.NoError(t, env.manager.Delete("1.json"))

	assert.Equal(t, []string{"2.json"}, env.files(t))
	current, _ := env.manager.Current()
	assert.Equal(t, "2.json", current)
	assert.Equal(t, "2.json", env.persisted(t))
	assert.Equal(t, 2, env.reloads)
}

func TestDelete_NonCurrentStillReselectsFirst(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]", "2.json": "[]", "3.json": "[]"})
	require.NoError(t, env.manager.Select("3.json"))

	require.NoError(t, env.manager.Delete("2.json"))
	current, _ := env.manager.Current()
	assert.Equal(t, "1.json", current)
}

func TestDelete_LastCreatesFresh(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": `[{"content": "bye"}]`})

	require.NoError(t, env.manager.Delete("1.json"))

	assert.Equal(t, []string{"1.json"}, env.files(t))
	data, err := os.ReadFile(filepath.Join(env.dir, "1.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, "1.json", env.persisted(t))
	assert.Equal(t, 1, env.reloads)
}

func TestDelete_Missing(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]"})

	err := env.manager.Delete("4.json")
	var herr *Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "delete", herr.Op)
	assert.Equal(t, "4.json", herr.Name)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "failed to delete conversation 4.json")
	assert.Equal(t, 0, env.reloads)
}

func TestDelete_InvalidName(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, name := range []string{"", "../config.json", "sub/1.json", "1.txt"} {
		assert.Error(t, env.manager.Delete(name), name)
	}
}

func TestClearAll(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]", "2.json": "[]", "10.json": "[]", "keep.txt": "x"})

	var asked string
	done, err := env.manager.ClearAll(func(prompt string) bool {
		asked = prompt
		return true
	})
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, ClearPrompt, asked)

	assert.Equal(t, []string{"1.json"}, env.files(t))
	data, err := os.ReadFile(filepath.Join(env.dir, "1.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, "1.json", env.persisted(t))
	assert.Equal(t, 1, env.reloads)

	_, err = os.Stat(filepath.Join(env.dir, "keep.txt"))
	assert.NoError(t, err)
}

func TestClearAll_Declined(t *testing.T) {
	env := newTestEnv(t, map[string]string{"1.json": "[]", "2.json": "[]"})

	done, err := env.manager.ClearAll(func(string) bool { return false })
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, []string{"1.json", "2.json"}, env.files(t))
	assert.Equal(t, 0, env.reloads)
}

func TestClearAll_RemoveFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	env := newTestEnv(t, map[string]string{"1.json": "[]"})
	require.NoError(t, os.Chmod(env.dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(env.dir, 0755) })

	done, err := env.manager.ClearAll(nil)
	assert.True(t, done)
	var herr *Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "clear", herr.Op)
	assert.Contains(t, err.Error(), "failed to clear conversations")
	assert.Equal(t, 0, env.reloads)
}

func TestMessages(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"1.json": `[{"role": "user", "content": "hello", "timestamp": 1}, {"role": "assistant", "content": "squawk"}]`,
	})

	messages, err := env.manager.Messages("1.json")
	require.NoError(t, err)
	assert.Equal(t, []Message{{Role: "user", Content: "hello"}, {Role: "assistant", Content: "squawk"}}, messages)

	_, err = env.manager.Messages("2.json")
	assert.True(t, errors.Is(err, ErrNotFound))
}
