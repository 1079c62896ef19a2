package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mayowa/hookbind"
)

const formVue = `<template>
  <form>
    <text-field v-ehb="username" />
  </form>
</template>
<script setup>
const username = useField('username')
</script>
`

const formVueExpected = `<template>
  <form>
    <text-field v-bind="username.bindProps" v-on="username.bindEvents" />
  </form>
</template>
<script setup>
const username = useField('username')
</script>
`

const plainVue = "<template><p>plain</p></template>\n"

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "src/components/Form.vue", formVue)
	writeFile(t, dir, "src/components/Plain.vue", plainVue)
	writeFile(t, dir, "src/main.ts", `import "v-ehb"`)
	writeFile(t, dir, "node_modules/lib/Lib.vue", formVue)
	writeFile(t, dir, ".cache/Cached.vue", formVue)
	return dir
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	args = append([]string{"-env", "", "-log-level", "error"}, args...)
	code := Main(context.Background(), args, stdout, stderr)
	return code, stdout.String(), stderr.String()
}

func TestCollectFiles(t *testing.T) {
	dir := setupProject(t)

	files, err := collectFiles([]string{dir, filepath.Join(dir, "src/main.ts")})
	require.NoError(t, err)

	for i := range files {
		files[i], _ = filepath.Rel(dir, files[i])
	}
	assert.ElementsMatch(t, []string{
		filepath.Join("src", "components", "Form.vue"),
		filepath.Join("src", "components", "Plain.vue"),
		filepath.Join("src", "main.ts"),
	}, files)

	_, err = collectFiles([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestMainPrintsRewritten(t *testing.T) {
	dir := setupProject(t)

	code, stdout, stderr := run(t, filepath.Join(dir, "src"))
	require.Equal(t, 0, code, stderr)
	if stdout != formVueExpected {
		t.Errorf("wrong output:\n%s", diff.LineDiff(stdout, formVueExpected))
	}

	// nothing written without -write
	content, err := os.ReadFile(filepath.Join(dir, "src/components/Form.vue"))
	require.NoError(t, err)
	assert.Equal(t, formVue, string(content))
}

func TestMainWrite(t *testing.T) {
	dir := setupProject(t)

	code, stdout, stderr := run(t, "-write", "-workers", "2", dir)
	require.Equal(t, 0, code, stderr)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(filepath.Join(dir, "src/components/Form.vue"))
	require.NoError(t, err)
	assert.Equal(t, formVueExpected, string(content))

	content, err = os.ReadFile(filepath.Join(dir, "src/components/Plain.vue"))
	require.NoError(t, err)
	assert.Equal(t, plainVue, string(content))

	content, err = os.ReadFile(filepath.Join(dir, "node_modules/lib/Lib.vue"))
	require.NoError(t, err)
	assert.Equal(t, formVue, string(content))
}

func TestMainHeadersForSeveralFiles(t *testing.T) {
	dir := setupProject(t)
	writeFile(t, dir, "src/Other.vue", formVue)

	code, stdout, _ := run(t, filepath.Join(dir, "src"))
	require.Equal(t, 0, code)
	assert.Equal(t, 2, strings.Count(stdout, "==> "))
	assert.Contains(t, stdout, "==> "+filepath.Join(dir, "src", "Other.vue")+" <==\n")
}

func TestMainCustomPrefix(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Row.vue", `<template><row x-hb="item"></row></template>`)

	code, stdout, stderr := run(t, "-prefix", "x-hb", "-bind-key", "p", "-event-key", "e", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `<template><row v-bind="item.p" v-on="item.e"></row></template>`, stdout)
}

func TestMainList(t *testing.T) {
	dir := setupProject(t)

	code, stdout, stderr := run(t, "-list", filepath.Join(dir, "src"))
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "text-field")
	assert.Contains(t, stdout, "username")
	assert.Contains(t, stdout, "1 bindings")
	assert.NotContains(t, stdout, "Plain.vue")
}

func TestMainFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Good.vue", formVue)
	writeFile(t, dir, "Broken.vue", `<script>const m = 'v-ehb="x"'</script>`)

	code, stdout, stderr := run(t, dir)
	assert.Equal(t, 1, code)
	assert.Equal(t, formVueExpected, stdout)
	assert.Contains(t, stderr, "1 of 2 components failed")
}

func TestMainInvalidConfig(t *testing.T) {
	dir := setupProject(t)

	code, _, stderr := run(t, "-bind-key", "v-ehb", dir)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "invalid config")
}

func TestRunCanceled(t *testing.T) {
	dir := setupProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, &Options{Paths: []string{dir}, Workers: 1}, hookbind.DefaultConfig(), &bytes.Buffer{}, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}
