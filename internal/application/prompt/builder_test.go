package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story-engine/internal/domain/entity"
)

func chars(names ...string) []*entity.Character {
	out := make([]*entity.Character, 0, len(names))
	for i, n := range names {
		out = append(out, &entity.Character{ID: uint(i + 1), Name: n})
	}
	return out
}

func TestDetectCharacters_WholeWordOnly(t *testing.T) {
	tests := []struct {
		name  string
		cast  string
		input string
		want  []string
	}{
		{"exact", "Mira", "Mira runs", []string{"Mira"}},
		{"prefix of longer word", "Mira", "Miranda runs", []string{}},
		{"case insensitive", "Mira", "then MIRA, breathless, runs", []string{"Mira"}},
		{"underscore is word", "Mira", "_Mira runs", []string{}},
		{"digit is word", "Mira", "Mira2 runs", []string{}},
		{"later occurrence", "Ann", "Anna waits for Ann.", []string{"Ann"}},
		{"only inside word", "Ann", "Anna waits", []string{}},
		{"trailing accent", "Zoë", "Zoë runs", []string{"Zoë"}},
		{"accent upper case", "Zoë", "ZOË runs", []string{"Zoë"}},
		{"accent inside longer word", "Zoë", "Zoëlle met Zoë", []string{"Zoë"}},
		{"leading accent", "Élodie", "Élodie runs", []string{"Élodie"}},
		{"leading accent lower case", "Élodie", "then élodie ran", []string{"Élodie"}},
		{"followed by accented letter", "Ann", "Annéa runs", []string{}},
		{"han name", "李明", "李明 走了", []string{"李明"}},
		{"han name inside run", "李明", "李明走了", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCharacters(tt.input, chars(tt.cast)))
		})
	}
}

func TestDetectCharacters_EmptyInputSelectsAll(t *testing.T) {
	cast := chars("Mira", "Tobias", "Ann")
	assert.Equal(t, []string{"Mira", "Tobias", "Ann"}, DetectCharacters("", cast))
}

func TestDetectCharacters_StoryOrderAndIdempotent(t *testing.T) {
	cast := chars("Tobias", "Mira", "O'Neil", "Dr. Vale")
	input := "Mira hands Dr. Vale the key while Tobias and O'Neil watch."

	first := DetectCharacters(input, cast)
	second := DetectCharacters(input, cast)
	assert.Equal(t, []string{"Tobias", "Mira", "O'Neil", "Dr. Vale"}, first)
	assert.Equal(t, first, second)
}

func TestDetectCharacters_DuplicateNamesKept(t *testing.T) {
	assert.Equal(t, []string{"Mira", "Mira"}, DetectCharacters("Mira", chars("Mira", "Mira")))
}

func TestContextWindow_LengthAndSuffix(t *testing.T) {
	for _, n := range []int{0, 1, 1999, 2000, 2001, 4500} {
		t.Run(fmt.Sprintf("%d_words", n), func(t *testing.T) {
			words := make([]string, n)
			for i := range words {
				words[i] = fmt.Sprintf("w%d", i)
			}
			text := "  " + strings.Join(words, " \n\t ") + "\n"

			window := ContextWindow(text, ContextWords)
			got := strings.Fields(window)

			want := n
			if want > ContextWords {
				want = ContextWords
			}
			require.Len(t, got, want)
			assert.Equal(t, words[n-want:], got)
			if n > 0 {
				assert.Equal(t, strings.Join(words[n-want:], " "), window)
			} else {
				assert.Equal(t, "", window)
			}
		})
	}
}

func TestRenderCharacterDossiers(t *testing.T) {
	cast := []*entity.Character{
		{ID: 1, Name: "Mira", Traits: "stubborn", Backstory: "exiled"},
		{ID: 2, Name: "Tobias"},
		{ID: 3, Name: "Ann", Backstory: "smuggler"},
	}

	want := "Name: Mira\nTraits: stubborn\nBackstory: exiled\n\nName: Tobias\n\nName: Ann\nBackstory: smuggler"
	assert.Equal(t, want, RenderCharacterDossiers(cast))
	assert.Equal(t, "no characters", RenderCharacterDossiers(nil))
}

func TestRenderCharacterNames(t *testing.T) {
	assert.Equal(t, "Mira, Tobias", RenderCharacterNames([]string{"Mira", "Tobias"}))
	assert.Equal(t, "no characters", RenderCharacterNames([]string{}))
}

func TestRenderWorldElements(t *testing.T) {
	elems := []*entity.WorldElement{
		{Category: entity.WorldCategorySettings, Description: "salt flats"},
		{Category: entity.WorldCategoryMagicTech, Description: "brine engines"},
	}
	assert.Equal(t, "- Settings: salt flats\n- Magic and Tech: brine engines", RenderWorldElements(elems))
	assert.Equal(t, "None", RenderWorldElements(nil))
}

func TestBuild_DetectedNamesLayout(t *testing.T) {
	got := Build(Request{
		Kind:        KindProse,
		Preset:      "PRESET",
		Input:       "Mira runs",
		Characters:  chars("Mira", "Tobias"),
		ChapterText: "one two   three",
	})

	want := "PRESET\n\n" +
		"Characters in scene: Mira\n" +
		"Scene: Mira runs\n\n" +
		"Recent chapter context (last 2000 words):\none two three\n\n" +
		"World Building Elements:\nNone"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_AccentedNameLayout(t *testing.T) {
	got := Build(Request{
		Kind:        KindProse,
		Preset:      "PRESET",
		Input:       "Zoë runs past Annéa",
		Characters:  chars("Zoë", "Ann", "Élodie"),
		ChapterText: "one two",
	})

	want := "PRESET\n\n" +
		"Characters in scene: Zoë\n" +
		"Scene: Zoë runs past Annéa\n\n" +
		"Recent chapter context (last 2000 words):\none two\n\n" +
		"World Building Elements:\nNone"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ExplicitSelectionLayout(t *testing.T) {
	cast := []*entity.Character{
		{ID: 7, Name: "Mira", Traits: "stubborn"},
		{ID: 9, Name: "Tobias"},
	}
	got := Build(Request{
		Kind:          KindBeat,
		Preset:        "P",
		Input:         "the gate falls",
		Characters:    cast,
		Selection:     []uint{9, 7, 404},
		WorldElements: []*entity.WorldElement{{Category: entity.WorldCategoryHistory, Description: "the war"}},
	})

	want := "P\n\n" +
		"Character Information:\nName: Mira\nTraits: stubborn\n\nName: Tobias\n\n" +
		"Beat/Scene Input: the gate falls\n\n" +
		"Recent chapter context (last 2000 words):\n\n\n" +
		"World Building Elements:\n- History: the war"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("prompt mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_EmptySelectionRendersPlaceholder(t *testing.T) {
	got := Build(Request{Kind: KindProse, Preset: "P", Characters: chars("Mira"), Selection: []uint{}})
	assert.Contains(t, got, "Character Information:\nno characters\n\n")
}

func TestBuild_DefaultPresetAndDeterminism(t *testing.T) {
	req := Request{
		Kind:        KindBeat,
		Input:       "",
		Characters:  chars("Mira", "Tobias"),
		ChapterText: "a b c",
	}

	first := Build(req)
	assert.True(t, strings.HasPrefix(first, DefaultBeatPreset+"\n\n"))
	assert.Contains(t, first, "Characters in scene: Mira, Tobias\n")
	assert.Equal(t, first, Build(req))

	req.Kind = KindProse
	assert.True(t, strings.HasPrefix(Build(req), DefaultProsePreset+"\n\n"))
}

func TestSummaryPrompt(t *testing.T) {
	got := SummaryPrompt("Mira ran.")
	assert.True(t, strings.HasPrefix(got, "Break down the following text into a list of key events in strict chronological order."))
	assert.True(t, strings.HasSuffix(got, "\n\nText:\nMira ran."))
}
