// Package textfilter tidies model replies before a fan sees them: it drops
// speaker prefixes and markdown the dialogue box cannot show, and can swap
// profanity for family-friendly words.
package textfilter

import (
	"cmp"
	"maps"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// replacements maps filtered words to what the player sees instead.
var replacements = map[string]string{
	"fuck":         "fudge",
	"fucking":      "flipping",
	"motherfucker": "mother-trucker",
	"shit":         "shoot",
	"bullshit":     "baloney",
	"horseshit":    "nonsense",
	"damn":         "dang",
	"goddamn":      "gosh-dang",
	"hell":         "heck",
	"ass":          "butt",
	"asshole":      "jerk",
	"dumbass":      "dummy",
	"jackass":      "jerk",
	"bitch":        "jerk",
	"bastard":      "rascal",
	"crap":         "crud",
	"piss":         "ticked",
	"dick":         "jerk",
	"prick":        "jerk",
	"douche":       "jerk",
	"cock":         "[censored]",
	"pussy":        "[censored]",
	"tits":         "[censored]",
	"whore":        "[censored]",
	"slut":         "[censored]",
	"retard":       "[censored]",
}

var (
	boldMarks    = regexp.MustCompile(`\*\*|__`)
	headingMark  = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]+`)
	bulletMark   = regexp.MustCompile(`(?m)^[ \t]*(?:[-*•]|\d+[.)])[ \t]+`)
	extraNewline = regexp.MustCompile(`\n{3,}`)
)

// Options choose which cleanups run. Markdown and prefix stripping always do.
type Options struct {
	Censor bool
}

// Filter is safe for concurrent use.
type Filter struct {
	censor bool
	words  *regexp.Regexp
}

func New(opts Options) *Filter {
	// longest first so "asshole" wins over "ass"
	keys := slices.SortedFunc(maps.Keys(replacements), func(a, b string) int {
		return cmp.Or(cmp.Compare(len(b), len(a)), strings.Compare(a, b))
	})
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return &Filter{
		censor: opts.Censor,
		words:  regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)(s?)\b`),
	}
}

// Clean returns reply as plain dialogue text spoken by speaker.
func (f *Filter) Clean(reply, speaker string) string {
	text := strings.TrimSpace(reply)
	text = stripSpeaker(text, speaker)
	text = boldMarks.ReplaceAllString(text, "")
	text = headingMark.ReplaceAllString(text, "")
	text = bulletMark.ReplaceAllString(text, "")
	text = extraNewline.ReplaceAllString(text, "\n\n")
	text = unquote(strings.TrimSpace(text))
	if f.censor {
		text = f.Censor(text)
	}
	return text
}

// Censor swaps every filtered word, keeping plurals and letter case.
func (f *Filter) Censor(text string) string {
	return f.words.ReplaceAllStringFunc(text, func(match string) string {
		parts := f.words.FindStringSubmatch(match)
		word, plural := parts[1], parts[2]
		out := matchCase(word, replacements[strings.ToLower(word)])
		if plural != "" && !strings.HasSuffix(out, "]") {
			out += matchCase(plural, "s")
		}
		return out
	})
}

// ContainsProfanity reports whether Censor would change text.
func (f *Filter) ContainsProfanity(text string) bool {
	return f.words.MatchString(text)
}

// stripSpeaker drops a leading "Name:" or "**Name**:" label.
func stripSpeaker(text, speaker string) string {
	speaker = strings.TrimSpace(speaker)
	if speaker == "" {
		return text
	}
	rest := strings.TrimLeft(text, "*")
	if len(rest) < len(speaker) || !strings.EqualFold(rest[:len(speaker)], speaker) {
		return text
	}
	rest = strings.TrimLeft(rest[len(speaker):], "*")
	after, ok := strings.CutPrefix(strings.TrimLeftFunc(rest, unicode.IsSpace), ":")
	if !ok {
		return text
	}
	return strings.TrimLeftFunc(after, unicode.IsSpace)
}

func unquote(text string) string {
	if len(text) < 2 {
		return text
	}
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		if strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) {
			inner := text[len(pair[0]) : len(text)-len(pair[1])]
			if !strings.ContainsAny(inner, `"“”`) {
				return strings.TrimSpace(inner)
			}
		}
	}
	return text
}

// matchCase shapes replacement after original: all caps, title case, or
// letter by letter for mixed case.
func matchCase(original, replacement string) string {
	switch {
	case strings.ToUpper(original) == original:
		return strings.ToUpper(replacement)
	case strings.ToLower(original) == original:
		return strings.ToLower(replacement)
	}

	// Casers hold state, so each call gets its own.
	title := cases.Title(language.English)
	if title.String(strings.ToLower(original)) == original {
		return title.String(replacement)
	}

	orig := []rune(original)
	out := []rune(replacement)
	for i := range out {
		if i < len(orig) && unicode.IsUpper(orig[i]) {
			out[i] = unicode.ToUpper(out[i])
		} else {
			out[i] = unicode.ToLower(out[i])
		}
	}
	return string(out)
}
