package nlptag

import (
	"regexp"
	"strings"
)

// Token roles produced by a Tagger.
const (
	RoleName     = "name"
	RoleLocation = "location"
	RoleVerb     = "verb"
)

type Token struct {
	Text  string
	Role  string
	Start int // byte offset into the tagged text
}

// Tagger extracts role-tagged tokens from narrative text. Implementations are
// heuristic and best-effort; analyzers must tolerate misses.
type Tagger interface {
	Tag(text string) []Token
}

var properNamePattern = regexp.MustCompile(`\b[A-Z][a-z]{2,}\b`)
var locationPhrasePattern = regexp.MustCompile(`\b(?:in|into|at|inside|near|to|from|toward|towards|entered|left|exited|reached) the ([a-z]+(?: [a-z]+)?)\b`)
var actionVerbPattern = regexp.MustCompile(`(?i)\b(said|asked|replied|whispered|shouted|murmured|called|told|answered|cried|snapped|smiled|laughed|frowned|nodded|ran|walked|grabbed|opened|closed|turned|looked|stared|reached|stood|sat|jumped|fought|drew|raised|fired|threw|caught|took|held|pushed|pulled)\b`)

var weakNameStopwords = map[string]struct{}{
	"the": {}, "what": {}, "maybe": {}, "not": {}, "well": {}, "yes": {}, "she": {}, "her": {},
	"however": {}, "anyway": {}, "therefore": {}, "meanwhile": {}, "then": {}, "also": {}, "still": {},
	"chapter": {}, "suddenly": {}, "finally": {}, "later": {}, "after": {}, "before": {}, "when": {},
	"there": {}, "here": {}, "and": {}, "but": {}, "his": {}, "him": {}, "they": {}, "that": {},
	"yesterday": {}, "today": {}, "tomorrow": {}, "tonight": {}, "far": {}, "once": {}, "inside": {},
	"something": {}, "nothing": {}, "everyone": {}, "someone": {},
}

const speechVerbAlternation = `(said|asked|replied|whispered|shouted|murmured|called|told|answered|cried|snapped)`

// Heuristic is the default regex-based tagger.
type Heuristic struct{}

func (Heuristic) Tag(text string) []Token {
	tokens := make([]Token, 0, 16)
	for _, m := range properNamePattern.FindAllStringIndex(text, -1) {
		candidate := text[m[0]:m[1]]
		if !keepNameCandidate(candidate, text) {
			continue
		}
		tokens = append(tokens, Token{Text: candidate, Role: RoleName, Start: m[0]})
	}
	for _, m := range locationPhrasePattern.FindAllStringSubmatchIndex(text, -1) {
		tokens = append(tokens, Token{Text: text[m[2]:m[3]], Role: RoleLocation, Start: m[2]})
	}
	for _, m := range actionVerbPattern.FindAllStringIndex(text, -1) {
		tokens = append(tokens, Token{Text: strings.ToLower(text[m[0]:m[1]]), Role: RoleVerb, Start: m[0]})
	}
	return tokens
}

func keepNameCandidate(name, text string) bool {
	if _, weak := weakNameStopwords[strings.ToLower(name)]; !weak {
		return true
	}
	return hasStrongNameEvidence(name, text)
}

// hasStrongNameEvidence checks possessive, vocative, title, and speech-verb
// adjacency, which are strong indicators of a real character name.
func hasStrongNameEvidence(name, text string) bool {
	if strings.Contains(text, name+"'s") || strings.Contains(text, ", "+name+",") {
		return true
	}
	quoted := regexp.QuoteMeta(name)
	if regexp.MustCompile(`(?i)\b(mr|mrs|ms|dr|prof)\.?\s+` + quoted + `\b`).MatchString(text) {
		return true
	}
	if regexp.MustCompile(quoted + `\s+\b` + speechVerbAlternation + `\b`).MatchString(text) {
		return true
	}
	if regexp.MustCompile(`(?i)\b` + speechVerbAlternation + `\b\s+` + quoted).MatchString(text) {
		return true
	}
	return false
}

// Names returns distinct RoleName token texts in order of first occurrence.
func Names(tokens []Token) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, 8)
	for _, tok := range tokens {
		if tok.Role != RoleName {
			continue
		}
		if _, ok := seen[tok.Text]; ok {
			continue
		}
		seen[tok.Text] = struct{}{}
		out = append(out, tok.Text)
	}
	return out
}

// FirstLocation returns the first RoleLocation token text, or "".
func FirstLocation(tokens []Token) string {
	for _, tok := range tokens {
		if tok.Role == RoleLocation {
			return tok.Text
		}
	}
	return ""
}
