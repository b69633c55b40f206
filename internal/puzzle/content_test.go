package puzzle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentNormalizes(t *testing.T) {
	raw := []byte(`[
		{"date":"2026-08-30","emojis":" 🧠⛈️ ","answer":"  Brainstorm  "},
		{"date":"2026-08-30","difficulty":"hard","emojis":"🔥🧯","answer":"Fire Extinguisher"},
		{"date":"2026-08-31","difficulty":"normal","emojis":"🙈","answer":""},
		{"date":"not-a-date","difficulty":"normal","emojis":"🙉","answer":"Dropped"},
		{"date":"2026-08-31","difficulty":"nightmare","emojis":"🙊","answer":"Dropped"}
	]`)

	got, err := parseContent(raw)
	require.NoError(t, err)
	require.Len(t, got, 2, "invalid entries are dropped, not fatal")

	assert.Equal(t, "Brainstorm", got[0].Answer)
	assert.Equal(t, "🧠⛈️", got[0].Emojis)
	assert.Equal(t, DifficultyNormal, got[0].Difficulty, "difficulty defaults to normal")
	assert.Equal(t, DifficultyHard, got[1].Difficulty)
}

func TestParseContentErrors(t *testing.T) {
	_, err := parseContent([]byte(`{`))
	assert.Error(t, err)

	_, err = parseContent([]byte(`[]`))
	assert.Error(t, err, "an empty set is a configuration error")
}

func TestEmbeddedDefaultsLoad(t *testing.T) {
	got, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	for _, p := range got {
		assert.NotEmpty(t, p.Answer)
		assert.True(t, ValidDate(p.Date))
	}
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository([]Puzzle{
		{Date: "2026-08-30", Difficulty: DifficultyNormal, Answer: "Peanut Butter Cup"},
	})

	p, err := repo.ByDate(context.Background(), "2026-08-30", DifficultyNormal)
	require.NoError(t, err)
	assert.Equal(t, "Peanut Butter Cup", p.Answer)

	_, err = repo.ByDate(context.Background(), "2026-08-30", DifficultyHard)
	assert.ErrorIs(t, err, ErrNotFound)

	repo.Add(Puzzle{Date: "2026-08-30", Difficulty: DifficultyHard, Answer: "Liger"})
	p, err = repo.ByDate(context.Background(), "2026-08-30", DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, "Liger", p.Answer)
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("")
	assert.NoError(t, err)
	assert.Equal(t, DifficultyNormal, d)

	d, err = ParseDifficulty("hard")
	assert.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	_, err = ParseDifficulty("extreme")
	assert.Error(t, err)
}

func TestDateKey(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	// 11pm EST is already the next UTC day; keys are plain UTC.
	at := time.Date(2026, 8, 30, 23, 0, 0, 0, est)
	assert.Equal(t, "2026-08-31", DateKey(at))
}
