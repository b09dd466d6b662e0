package quiz

import (
	"math/rand"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordich/pkg/models"
)

func newTestGenerator() *Generator {
	return NewGenerator(rand.New(rand.NewSource(42)))
}

func sampleWords() []models.Word {
	return []models.Word{
		{ID: 1, Word: "cat", Translation: "кот", Example: "The cat is sleeping."},
		{ID: 2, Word: "dog", Translation: "собака", Example: "The dog is barking."},
		{ID: 3, Word: "house", Translation: "дом", Example: "This is my house."},
		{ID: 4, Word: "water", Translation: "вода", Example: "I need water."},
		{ID: 5, Word: "book", Translation: "книга", Example: "I read a book."},
	}
}

func TestChoiceQuizHasFourOptionsWithOneAnswer(t *testing.T) {
	g := newTestGenerator()
	words := sampleWords()

	for _, kind := range []Kind{TranslationChoice, WordChoice} {
		q, err := g.GenerateKind(words[0], words, kind)
		require.NoError(t, err)

		assert.Len(t, q.Options, OptionCount)
		matches := 0
		for _, o := range q.Options {
			if o == q.Answer {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "kind %s", kind)
	}
}

func TestChoiceQuizSynthesizesDistractors(t *testing.T) {
	g := newTestGenerator()
	target := models.Word{ID: 1, Word: "cat", Translation: "кот"}

	tests := []struct {
		name string
		pool []models.Word
	}{
		{"empty pool", nil},
		{"only the target", []models.Word{target}},
		{"one candidate", []models.Word{target, {ID: 2, Word: "dog", Translation: "собака"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := g.GenerateKind(target, tt.pool, TranslationChoice)
			require.NoError(t, err)

			require.Len(t, q.Options, OptionCount)
			seen := map[string]bool{}
			matches := 0
			for _, o := range q.Options {
				assert.False(t, seen[o], "duplicate option %q", o)
				seen[o] = true
				if o == q.Answer {
					matches++
				}
			}
			assert.Equal(t, 1, matches)
		})
	}
}

func TestTranslationChoicePromptAndAnswer(t *testing.T) {
	g := newTestGenerator()
	words := sampleWords()

	q, err := g.GenerateKind(words[0], words, TranslationChoice)
	require.NoError(t, err)
	assert.Equal(t, "кот", q.Answer)
	assert.Contains(t, q.Prompt, "cat")
	assert.Equal(t, 10, q.Points)
	assert.True(t, q.AudioEligible)
}

func TestWordChoicePromptAndAnswer(t *testing.T) {
	g := newTestGenerator()
	words := sampleWords()

	q, err := g.GenerateKind(words[1], words, WordChoice)
	require.NoError(t, err)
	assert.Equal(t, "dog", q.Answer)
	assert.Contains(t, q.Prompt, "собака")
	assert.False(t, q.AudioEligible)
}

func TestFillInBlankBlanksFirstOccurrence(t *testing.T) {
	g := newTestGenerator()
	target := models.Word{ID: 1, Word: "cat", Translation: "кот", Example: "The cat saw another cat."}

	q, err := g.GenerateKind(target, nil, FillInBlank)
	require.NoError(t, err)
	assert.Equal(t, FillInBlank, q.Kind)
	assert.Contains(t, q.Prompt, "The "+BlankMarker+" saw another cat.")
	assert.Equal(t, "cat", q.Answer)
	assert.Equal(t, "кот", q.Hint)
	assert.Equal(t, 15, q.Points)
	assert.Nil(t, q.Options)
}

func TestFillInBlankFallsBackWithoutExample(t *testing.T) {
	g := newTestGenerator()
	words := sampleWords()
	target := models.Word{ID: 9, Word: "pen", Translation: "ручка"}

	q, err := g.GenerateKind(target, words, FillInBlank)
	require.NoError(t, err)
	assert.Equal(t, TranslationChoice, q.Kind)
	assert.Len(t, q.Options, OptionCount)
}

func TestGenerateRejectsEmptyTarget(t *testing.T) {
	g := newTestGenerator()
	_, err := g.Generate(models.Word{}, sampleWords())
	assert.ErrorIs(t, err, ErrEmptyTarget)
}

func TestGenerateUsesOnlyKnownKinds(t *testing.T) {
	g := newTestGenerator()
	words := sampleWords()
	for i := 0; i < 50; i++ {
		q, err := g.Generate(words[i%len(words)], words)
		require.NoError(t, err)
		assert.Contains(t, []Kind{TranslationChoice, WordChoice, FillInBlank}, q.Kind)
	}
}

func TestCheckAnswer(t *testing.T) {
	fill := Quiz{Kind: FillInBlank, Answer: "cat"}
	assert.True(t, CheckAnswer(fill, "cat"))
	assert.True(t, CheckAnswer(fill, "  CAT "))
	assert.False(t, CheckAnswer(fill, "dog"))

	choice := Quiz{Kind: TranslationChoice, Answer: "кот"}
	assert.True(t, CheckAnswer(choice, "кот"))
	assert.False(t, CheckAnswer(choice, " кот "), "choice kinds require an exact match")
	assert.False(t, CheckAnswer(choice, "КОТ"))
}

func TestBlankFirstIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, BlankMarker+" is sleeping.", blankFirst("Cat is sleeping.", "cat"))
	assert.Equal(t, "no match "+BlankMarker, blankFirst("no match", "cat"))
}

func TestBlankFirstKeepsRunesIntact(t *testing.T) {
	// "İ" (U+0130) grows from 2 to 3 bytes under strings.ToLower; an index
	// taken on a lowered copy would slice mid-rune in the original.
	assert.Equal(t, BlankMarker+" is a big city.", blankFirst("İstanbul is a big city.", "istanbul"))
	assert.Equal(t, "Я люблю "+BlankMarker+".", blankFirst("Я люблю İstanbul.", "istanbul"))
	assert.True(t, utf8.ValidString(blankFirst("İİ cat İİ", "cat")))
}
