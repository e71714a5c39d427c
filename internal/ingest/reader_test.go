package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategories(t *testing.T) {
	csv := "\ufeffcategory,subreddit\n" +
		"Sports,nba\n" +
		"Sports, soccer \n" +
		"Sports,NBA\n" +
		"Sports,x\n" +
		"Sports,bad-name!\n" +
		",aww\n" +
		"onlyone\n" +
		"Cute,aww\n" +
		"Cute,rarepuppers\n"

	got, err := ParseCategories(strings.NewReader(csv))
	require.NoError(t, err)

	require.Equal(t, map[string][]string{
		"Sports": {"nba", "soccer"},
		"Cute":   {"aww", "rarepuppers"},
	}, got)
}

func TestLoadCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.csv")
	require.NoError(t, os.WriteFile(path, []byte("category,subreddit\nHot,PublicFreakout\n"), 0o644))

	got, err := LoadCategories(path)
	require.NoError(t, err)
	require.Equal(t, map[string][]string{"Hot": {"PublicFreakout"}}, got)

	_, err = LoadCategories(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
