package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Scenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "curly quotes and accented latin-1",
			input: "Caf\u00e9 \u2019s \u201cquote\u201d",
			want:  "Caf\u00e9 's \"quote\"",
		},
		{
			name:  "private use glyph",
			input: "\uf084",
			want:  " ",
		},
		{
			name:  "dashes and no-break space",
			input: "10\u201320\u00a0km \u2014 done",
			want:  "10-20 km - done",
		},
		{
			name:  "degree glyphs",
			input: "25\uf0b0C 30\u02daF",
			want:  "25\u00b0C 30\u00b0F",
		},
		{
			name:  "ligature decomposes to ascii",
			input: "\ufb01nance",
			want:  "finance",
		},
		{
			name:  "control and format characters become spaces",
			input: "a\u200bb\u0085c",
			want:  "a b c",
		},
		{
			name:  "invalid utf-8 byte becomes a space",
			input: "a\xffb",
			want:  "a b",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "plain ascii with newlines",
			input: "line one\nline two\t",
			want:  "line one\nline two\t",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_TableEntriesIgnoreContext(t *testing.T) {
	contexts := [][2]string{{"", ""}, {"a", "b"}, {"\u00e9", "\u2014"}, {" ", "\n"}}
	for r, sub := range Replacements() {
		for _, c := range contexts {
			got := Normalize(c[0] + string(r) + c[1])
			want := Normalize(c[0]) + sub + Normalize(c[1])
			assert.Equal(t, want, got, "rune %U in context %q", r, c)
		}
		assert.Equal(t, sub, Normalize(string(r)), "rune %U", r)
	}
}

func TestNormalize_IdentityOnASCIIAndLatin1(t *testing.T) {
	for r := rune(0); r <= 0xFF; r++ {
		if r >= 0x80 && r < 0xA0 {
			continue
		}
		if _, ok := Replacement(r); ok {
			continue
		}
		assert.Equal(t, string(r), Normalize(string(r)), "rune %U", r)
	}
}

func TestNormalize_RangeInvariantAndIdempotence(t *testing.T) {
	var sb strings.Builder
	for r := rune(0); r < 0x30000; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		sb.WriteRune(r)
	}
	input := sb.String()

	once := Normalize(input)
	for _, r := range once {
		require.True(t, InRange(r), "rune %U escaped the cleaned range", r)
	}
	assert.Equal(t, once, Normalize(once))

	ascii := New(PolicyASCII).Normalize(input)
	for _, r := range ascii {
		require.Less(t, r, rune(utf8.RuneSelf), "rune %U is not ascii", r)
	}
	assert.Equal(t, ascii, New(PolicyASCII).Normalize(ascii))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		r       rune
		outcome Outcome
		want    string
	}{
		{"table entry", '\u2019', Mapped, "'"},
		{"ascii letter", 'A', ASCIIPassthrough, "A"},
		{"ascii control", '\t', ASCIIPassthrough, "\t"},
		{"latin-1 letter", '\u00e9', Latin1Passthrough, "\u00e9"},
		{"latin-1 fraction", '\u00bd', Latin1Passthrough, "\u00bd"},
		{"fullwidth exclamation", '\uff01', Decomposed, "!"},
		{"circled digit", '\u2460', Decomposed, "1"},
		{"em space", '\u2003', Decomposed, " "},
		{"greek ano teleia", '\u0387', Decomposed, "\u00b7"},
		{"ligature", '\ufb01', Stripped, "fi"},
		{"o with macron", '\u014d', Stripped, "o"},
		{"vulgar third", '\u2153', Stripped, "13"},
		{"euro sign", '\u20ac', SpaceFallback, " "},
		{"greek omega", '\u03a9', SpaceFallback, " "},
		{"combining acute", '\u0301', SpaceFallback, " "},
		{"zero width space", '\u200b', SpaceFallback, " "},
		{"c1 control", '\u0085', SpaceFallback, " "},
		{"private use", '\ue000', SpaceFallback, " "},
		{"replacement character", utf8.RuneError, SpaceFallback, " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, got := Classify(tt.r)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_ASCIIPolicy(t *testing.T) {
	n := New(PolicyASCII)
	assert.Equal(t, PolicyASCII, n.Policy())
	assert.Equal(t, "Cafe 12 's", n.Normalize("Caf\u00e9 12\u00b0 \u2019s"))
	assert.Equal(t, "a b", n.Normalize("a\u00a0b"))
}

func TestNormalizer_ZeroValueIsLatin1(t *testing.T) {
	var n Normalizer
	assert.Equal(t, PolicyLatin1, n.Policy())
	assert.Equal(t, "Caf\u00e9", n.Normalize("Caf\u00e9"))

	var nilNormalizer *Normalizer
	assert.Equal(t, PolicyLatin1, nilNormalizer.Policy())
}

func TestASCIIFold(t *testing.T) {
	assert.Equal(t, "resume naive", ASCIIFold("r\u00e9sum\u00e9 na\u00efve"))
	assert.Equal(t, "", ASCIIFold("\u00b0"))
	assert.Equal(t, "plain", ASCIIFold("plain"))
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"", PolicyLatin1, false},
		{"latin1", PolicyLatin1, false},
		{" ASCII ", PolicyASCII, false},
		{"utf8", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownPolicy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "mapped", Mapped.String())
	assert.Equal(t, "space", SpaceFallback.String())
	assert.Equal(t, "outcome(42)", Outcome(42).String())
}
