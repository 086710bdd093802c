package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"davomat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestT(t *testing.T) {
	t.Run("KnownKey", func(t *testing.T) {
		assert.Equal(t, "Главное меню. Выберите действие:", T(models.LangRu, "menu_title"))
		assert.Equal(t, "Asosiy menyu. Kerakli amalni tanlang:", T(models.LangUz, "menu_title"))
	})

	t.Run("UnknownLangFallsBackToUzbek", func(t *testing.T) {
		assert.Equal(t, T(models.LangUz, "menu_title"), T("en", "menu_title"))
	})

	t.Run("UnknownKeyReturnsKey", func(t *testing.T) {
		assert.Equal(t, "no_such_key", T(models.LangRu, "no_such_key"))
	})
}

func TestTf(t *testing.T) {
	got := Tf(models.LangRu, "request_created", 42)
	assert.Contains(t, got, "#42")
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.yaml")
	content := `
menu_title:
  ru: "Меню компании"
brand_new_key:
  uz: "Yangi matn"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, LoadOverrides(path))

	assert.Equal(t, "Меню компании", T(models.LangRu, "menu_title"))
	// Узбекский текст не затронут.
	assert.Equal(t, "Asosiy menyu. Kerakli amalni tanlang:", T(models.LangUz, "menu_title"))
	assert.Equal(t, "Yangi matn", T(models.LangUz, "brand_new_key"))

	assert.Error(t, LoadOverrides(filepath.Join(dir, "missing.yaml")))
}
