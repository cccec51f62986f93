package voice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func fullProfile() *Profile {
	return &Profile{
		FrequentWords:        []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11"},
		IndustryJargon:       []string{"j1", "j2", "j3", "j4", "j5", "j6", "j7", "j8", "j9"},
		SignatureExpressions: []string{"let's go", "here's the thing", "plot twist", "fourth"},
		NeverUsePhrases:      []string{"synergy"},
		SentenceLength:       "short",
		StructurePatterns:    []string{"numbered lists"},
		Directness:           intp(10),
		Confidence:           intp(1),
		Energy:               intp(5),
		Tone:                 "warm",
		Formality:            intp(10),
		StorytellingStyle:    "personal anecdotes",
		HumorUsage:           "subtle",
		QuestionUsage:        "ending",
		EmojiUsage:           "none",
		PreferredHooks:       []string{"bold statement", "question", "statistic"},
	}
}

func TestBuildDirectives_FixedOrder(t *testing.T) {
	got := BuildDirectives(fullProfile())
	require.Len(t, got, 16)

	assert.True(t, strings.HasPrefix(got[0], "Naturally use words"))
	assert.Contains(t, got[0], "a10")
	assert.NotContains(t, got[0], "a11")
	assert.Contains(t, got[1], "j8")
	assert.NotContains(t, got[1], "j9")
	assert.Contains(t, got[2], `"plot twist"`)
	assert.NotContains(t, got[2], "fourth")
	assert.Contains(t, got[3], `"synergy"`)
	assert.Equal(t, sentenceLengthText["short"], got[4])
	assert.Contains(t, got[5], "numbered lists")
	assert.Equal(t, "Directness: bluntly direct.", got[6])
	assert.Equal(t, "Confidence: extremely humble and tentative.", got[7])
	assert.Equal(t, "Energy: moderately lively.", got[8])
	assert.Equal(t, "Write in a warm tone.", got[9])
	assert.Equal(t, "Formality: extremely formal.", got[10])
	assert.Equal(t, "Storytelling style: personal anecdotes.", got[11])
	assert.Equal(t, humorText["subtle"], got[12])
	assert.Equal(t, questionText["ending"], got[13])
	assert.Equal(t, emojiText["none"], got[14])
	assert.Equal(t, "Open with a hook in one of these styles: bold statement, question.", got[15])
}

func TestBuildBlock_EmptyProfile(t *testing.T) {
	assert.Equal(t, "", BuildBlock(nil))
	assert.Equal(t, "", BuildBlock(&Profile{}))
	assert.Equal(t, "", BuildBlock(&Profile{FrequentWords: []string{" ", ""}, Tone: "  "}))
}

func TestBuildBlock_OmitsAbsentFields(t *testing.T) {
	block := BuildBlock(&Profile{Tone: "friendly"})
	require.NotEmpty(t, block)
	assert.True(t, strings.HasPrefix(block, blockHeader))
	assert.True(t, strings.HasSuffix(block, blockFooter))
	assert.Contains(t, block, "- Write in a friendly tone.\n")
	for _, absent := range []string{"Directness", "Confidence", "Energy", "Formality", "Emoji", "Humor", "hook"} {
		assert.NotContains(t, block, absent)
	}
}

func TestBuildDirectives_OutOfRangeScalesOmitted(t *testing.T) {
	got := BuildDirectives(&Profile{
		Directness: intp(0),
		Confidence: intp(11),
		Energy:     intp(-3),
		Formality:  intp(1),
	})
	assert.Equal(t, []string{"Formality: extremely casual and conversational."}, got)
}

func TestBuildDirectives_UnknownCategoricalValueUsesGenericTemplate(t *testing.T) {
	got := BuildDirectives(&Profile{EmojiUsage: "only rockets", SentenceLength: "Short"})
	assert.Equal(t, []string{sentenceLengthText["short"], "Emoji usage: only rockets."}, got)
}

func TestBuildDirectives_Deterministic(t *testing.T) {
	p := fullProfile()
	assert.Equal(t, BuildBlock(p), BuildBlock(p))
}
