package dialogue

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Prefix maps a leading tag such as "NPC" to a speaker.
type Prefix struct {
	Text    string
	Speaker Speaker
}

// DefaultPrefixes is checked in order; NPC tags win over player tags.
var DefaultPrefixes = []Prefix{
	{Text: "NPC", Speaker: SpeakerNPC},
	{Text: "Player", Speaker: SpeakerPlayer},
	{Text: "Detective", Speaker: SpeakerPlayer},
	{Text: "Ditective", Speaker: SpeakerPlayer},
}

// Parser splits paragraphs into sentences and resolves speakers.
type Parser struct {
	Prefixes       []Prefix
	DefaultSpeaker Speaker
}

func NewParser() Parser {
	return Parser{
		Prefixes:       append([]Prefix(nil), DefaultPrefixes...),
		DefaultSpeaker: SpeakerNPC,
	}
}

// Sentences yields the trimmed, non-empty sentences of paragraph.
func (p Parser) Sentences(paragraph string) iter.Seq[string] {
	return func(yield func(string) bool) {
		text := strings.NewReplacer("\r", " ", "\n", " ").Replace(paragraph)
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}

		start := 0
		i := 0
		for i < len(text) {
			c := text[i]
			if c != '.' && c != '!' && c != '?' {
				i++
				continue
			}

			end := i + 1
			if c == '.' {
				for end < len(text) && text[end] == '.' {
					end++
				}
			}
			for end < len(text) && isClosingMark(text[end]) {
				end++
			}

			if sentence := strings.TrimSpace(text[start:end]); sentence != "" {
				if !yield(sentence) {
					return
				}
			}

			for end < len(text) && isSpace(text[end]) {
				end++
			}
			start = end
			i = end
		}

		if start < len(text) {
			if rest := strings.TrimSpace(text[start:]); rest != "" {
				yield(rest)
			}
		}
	}
}

// Lines yields one Line per sentence. Unprefixed sentences inherit the most
// recent explicit speaker, starting from DefaultSpeaker.
func (p Parser) Lines(paragraph string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		last := p.DefaultSpeaker
		for sentence := range p.Sentences(paragraph) {
			line := Line{Speaker: last, Text: sentence}
			if speaker, cleaned, ok := p.ParseSpeaker(sentence); ok {
				line = Line{Speaker: speaker, Text: cleaned, Explicit: true}
				last = speaker
			}
			if line.Text == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Parse collects Lines into a slice.
func (p Parser) Parse(paragraph string) []Line {
	var lines []Line
	for line := range p.Lines(paragraph) {
		lines = append(lines, line)
	}
	return lines
}

// ParseSpeaker strips a known speaker prefix from sentence.
func (p Parser) ParseSpeaker(sentence string) (Speaker, string, bool) {
	for _, prefix := range p.Prefixes {
		if cleaned, ok := stripPrefix(sentence, prefix.Text); ok {
			return prefix.Speaker, cleaned, true
		}
	}
	return SpeakerUnknown, sentence, false
}

func stripPrefix(sentence, prefix string) (string, bool) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || len(sentence) < len(prefix) {
		return sentence, false
	}
	if !strings.EqualFold(sentence[:len(prefix)], prefix) {
		return sentence, false
	}

	rest := sentence[len(prefix):]
	if r, _ := utf8.DecodeRuneInString(rest); rest != "" && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return sentence, false
	}

	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	if strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "-") {
		rest = rest[1:]
	}
	return strings.TrimSpace(rest), true
}

func isClosingMark(c byte) bool {
	return c == '"' || c == '\'' || c == ')'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
