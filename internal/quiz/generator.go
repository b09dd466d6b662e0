package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/wordich/pkg/models"
)

// Kind represents the presentation style of a quiz question
type Kind string

const (
	// TranslationChoice asks for the translation of a word among 4 options
	TranslationChoice Kind = "translation"
	// WordChoice asks which word matches a translation among 4 options
	WordChoice Kind = "word"
	// FillInBlank asks to type the word missing from its example sentence
	FillInBlank Kind = "fill"
)

// kinds used for the random draw when no kind is forced.
var kinds = []Kind{TranslationChoice, WordChoice, FillInBlank}

// OptionCount is the fixed number of options presented for choice kinds.
const OptionCount = 4

// BlankMarker replaces the target word in fill-in-blank sentences.
const BlankMarker = "_____"

// ErrEmptyTarget is returned when the target word has no surface form to quiz on.
var ErrEmptyTarget = errors.New("quiz: target word is empty")

// Quiz is a generated question. It is a value produced fresh per lesson step
// and never mutated.
type Quiz struct {
	Kind    Kind
	WordID  int64
	Prompt  string
	Answer  string
	Options []string // exactly OptionCount entries for choice kinds, nil for fill
	Hint    string   // translation hint for fill-in-blank
	Points  int
	// AudioEligible marks quizzes the voice layer may deliver as a listening
	// exercise instead of text.
	AudioEligible bool
}

// Generator builds quizzes for target words. The random source is injected so
// scenario tests can run deterministically.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator backed by the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate builds a quiz of a uniformly random kind for the target word.
// The pool supplies distractor candidates for choice kinds.
func (g *Generator) Generate(target models.Word, pool []models.Word) (Quiz, error) {
	return g.GenerateKind(target, pool, kinds[g.rng.Intn(len(kinds))])
}

// GenerateKind builds a quiz of a specific kind. A fill-in-blank request for a
// word without an example falls back to translation-choice rather than making
// a second random draw.
func (g *Generator) GenerateKind(target models.Word, pool []models.Word, kind Kind) (Quiz, error) {
	if target.Word == "" {
		return Quiz{}, ErrEmptyTarget
	}

	switch kind {
	case WordChoice:
		return g.choiceQuiz(target, pool, kind), nil
	case FillInBlank:
		if strings.TrimSpace(target.Example) == "" {
			return g.choiceQuiz(target, pool, TranslationChoice), nil
		}
		return g.fillQuiz(target), nil
	default:
		return g.choiceQuiz(target, pool, TranslationChoice), nil
	}
}

// choiceQuiz builds a 4-option question. For TranslationChoice the options are
// translations, for WordChoice they are surface forms.
func (g *Generator) choiceQuiz(target models.Word, pool []models.Word, kind Kind) Quiz {
	var answer, prompt string
	pick := func(w models.Word) string { return w.Translation }

	if kind == WordChoice {
		answer = target.Word
		prompt = fmt.Sprintf("Which word means \"%s\"?", target.Translation)
		pick = func(w models.Word) string { return w.Word }
	} else {
		answer = target.Translation
		prompt = fmt.Sprintf("What does \"%s\" mean?", target.Word)
	}

	options := append(g.distractors(target, pool, pick, answer), answer)
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Quiz{
		Kind:          kind,
		WordID:        target.ID,
		Prompt:        prompt,
		Answer:        answer,
		Options:       options,
		Points:        10,
		AudioEligible: kind == TranslationChoice,
	}
}

// fillQuiz blanks the first occurrence of the target word in its example.
func (g *Generator) fillQuiz(target models.Word) Quiz {
	return Quiz{
		Kind:    FillInBlank,
		WordID:  target.ID,
		Prompt:  fmt.Sprintf("Fill in the missing word:\n\n%s", blankFirst(target.Example, target.Word)),
		Answer:  target.Word,
		Hint:    target.Translation,
		Points:  15,
	}
}

// distractors samples OptionCount-1 distinct wrong answers from the pool,
// excluding the target, padding with synthesized placeholders when the pool
// cannot supply enough.
func (g *Generator) distractors(target models.Word, pool []models.Word, pick func(models.Word) string, answer string) []string {
	candidates := make([]string, 0, len(pool))
	seen := map[string]bool{answer: true}
	for _, w := range pool {
		v := pick(w)
		if w.ID == target.ID || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		candidates = append(candidates, v)
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	want := OptionCount - 1
	if len(candidates) > want {
		candidates = candidates[:want]
	}
	for i := 1; len(candidates) < want; i++ {
		placeholder := fmt.Sprintf("option %d", g.rng.Intn(100)+i*100)
		if seen[placeholder] {
			continue
		}
		seen[placeholder] = true
		candidates = append(candidates, placeholder)
	}
	return candidates
}

// CheckAnswer validates a submitted answer against the quiz. Fill-in-blank is
// compared case-insensitively with surrounding whitespace trimmed; choice
// kinds require an exact match against the recorded answer.
func CheckAnswer(q Quiz, submitted string) bool {
	if q.Kind == FillInBlank {
		return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(q.Answer))
	}
	return submitted == q.Answer
}

// blankFirst replaces the first case-insensitive occurrence of word in the
// sentence with the blank marker, appending the marker when the word does not
// occur at all. The match is folded rune by rune, so case mappings that change
// the encoded length never split a rune in the original sentence.
func blankFirst(sentence, word string) string {
	for i := range sentence {
		if n := foldMatchLen(sentence[i:], word); n >= 0 {
			return sentence[:i] + BlankMarker + sentence[i+n:]
		}
	}
	return sentence + " " + BlankMarker
}

// foldMatchLen reports how many bytes at the start of s fold-match word, or -1
// when they do not.
func foldMatchLen(s, word string) int {
	n := 0
	for _, wr := range word {
		sr, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || unicode.ToLower(sr) != unicode.ToLower(wr) {
			return -1
		}
		n += size
	}
	return n
}
