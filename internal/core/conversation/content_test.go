package conversation

import (
	"testing"

	"github.com/ogurasousui/shift-checkin-bot/internal/core/checkin"
)

// The default-on-miss fallback in lookupMood/lookupDifficulty is only safe while
// the rendered keyboards and the token vocabularies stay in lock-step.
func TestMoodKeyboardMatchesVocabulary(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, row := range moodKeyboard() {
		for _, choice := range row {
			mood, ok := moodByToken[choice.Token]
			if !ok {
				t.Errorf("keyboard token %q has no mood mapping", choice.Token)
			}
			if !checkin.ValidMood(mood) {
				t.Errorf("token %q maps to invalid mood %q", choice.Token, mood)
			}
			seen[choice.Token] = true
		}
	}

	for token := range moodByToken {
		if !seen[token] {
			t.Errorf("mood token %q is never rendered", token)
		}
	}
}

func TestDifficultyKeyboardMatchesVocabulary(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, row := range difficultyKeyboard() {
		for _, choice := range row {
			difficulty, ok := difficultyByToken[choice.Token]
			if !ok {
				t.Errorf("keyboard token %q has no difficulty mapping", choice.Token)
			}
			if !checkin.ValidDifficulty(difficulty) {
				t.Errorf("token %q maps to invalid difficulty %q", choice.Token, difficulty)
			}
			if choice.Label != string(difficulty) {
				t.Errorf("label %q does not match stored value %q", choice.Label, difficulty)
			}
			seen[choice.Token] = true
		}
	}

	for token := range difficultyByToken {
		if !seen[token] {
			t.Errorf("difficulty token %q is never rendered", token)
		}
	}
}

func TestScoreKeyboardCoversOneThroughTen(t *testing.T) {
	t.Parallel()

	rows := scoreKeyboard()
	if len(rows) != 2 || len(rows[0]) != 5 || len(rows[1]) != 5 {
		t.Fatalf("expected a 5+5 layout, got %v", rows)
	}

	want := 1
	for _, row := range rows {
		for _, choice := range row {
			score, ok := parseScoreToken(choice.Token)
			if !ok {
				t.Errorf("token %q does not parse as a score", choice.Token)
			}
			if score != want {
				t.Errorf("expected score %d, got %d", want, score)
			}
			want++
		}
	}
}

func TestLookupDefaults(t *testing.T) {
	t.Parallel()

	if got := lookupMood("mood_unknown"); got != checkin.MoodNeutral {
		t.Errorf("expected neutral fallback, got %q", got)
	}
	if got := lookupDifficulty("diff_unknown"); got != checkin.DifficultyNone {
		t.Errorf("expected neutral fallback, got %q", got)
	}
}

func TestSupportTipsNotEmpty(t *testing.T) {
	t.Parallel()

	if len(supportTips) == 0 {
		t.Fatal("support tips must not be empty")
	}
	for i, tip := range supportTips {
		if tip == "" {
			t.Errorf("tip %d is empty", i)
		}
	}
}
