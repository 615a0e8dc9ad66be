package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectStructure(t *testing.T) {
	t.Run("go.modファイルが存在する", func(t *testing.T) {
		assert.FileExists(t, "go.mod")
	})

	t.Run("必要なディレクトリが存在する", func(t *testing.T) {
		dirs := []string{
			"cmd",
			filepath.Join("internal", "labeler"),
			filepath.Join("internal", "tracker"),
			filepath.Join("internal", "linear"),
			filepath.Join("internal", "github"),
		}
		for _, dir := range dirs {
			assert.DirExists(t, dir)
		}
	})

	t.Run("main.goファイルが存在する", func(t *testing.T) {
		assert.FileExists(t, "main.go")
	})
}

func TestGoModContent(t *testing.T) {
	t.Run("go.modにモジュール名が含まれている", func(t *testing.T) {
		content, err := os.ReadFile("go.mod")
		require.NoError(t, err)

		assert.True(t, strings.Contains(string(content), "module github.com/douhashi/labeler"))
	})
}
