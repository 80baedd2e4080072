package quizgen

import (
	"strings"
	"unicode/utf8"
)

// wordDifficulty rates a single word by its length in letters.
func wordDifficulty(word string) Difficulty {
	switch n := utf8.RuneCountInString(word); {
	case n <= 4:
		return Easy
	case n <= 8:
		return Medium
	default:
		return Hard
	}
}

// sentenceDifficulty rates a grammar sentence by its word count.
func sentenceDifficulty(sentence string) Difficulty {
	switch n := len(strings.Fields(sentence)); {
	case n <= 6:
		return Easy
	case n <= 12:
		return Medium
	default:
		return Hard
	}
}

// textDifficulty rates a sentence for translation by its word count.
// Translation uses tighter thresholds than grammar: picking among full
// translations gets hard faster than judging a single grammar point.
func textDifficulty(text string) Difficulty {
	switch n := len(strings.Fields(text)); {
	case n <= 5:
		return Easy
	case n <= 10:
		return Medium
	default:
		return Hard
	}
}
