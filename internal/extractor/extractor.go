// Package extractor derives candidate entity names from free-text task
// descriptions. It is a heuristic, not a parser: false positives are cheap
// (they fail lookup downstream), missed names degrade retrieval quality.
package extractor

import (
	"regexp"
	"strings"
)

var (
	quotedRe   = regexp.MustCompile("[\"'`](\\w+)[\"'`]")
	prefixRe   = regexp.MustCompile(`(?i)\b((?:dim|fct|stg|int|rpt)_\w+)\b`)
	addToRe    = regexp.MustCompile(`(?i)add\s+(?:a\s+)?(\w+)\s+(?:column\s+)?to\s+(\w+)`)
	createInRe = regexp.MustCompile(`(?i)create\s+(?:a\s+)?(\w+)\s+(?:column\s+)?in\s+(\w+)`)
	wordRe     = regexp.MustCompile(`\b([a-z_]+)\b`)
)

// guessSuffixes are appended to bare words to guess at column names.
var guessSuffixes = []string{"_id", "_key", "_at", "_amount", "_date"}

// Candidates extracts an ordered, deduplicated list of plausible entity
// names from a task description. Rules run in a fixed order and their output
// is concatenated before deduplication, so earlier rules dominate ordering.
func Candidates(task string) []string {
	var names []string
	names = append(names, quotedNames(task)...)
	names = append(names, prefixedNames(task)...)
	names = append(names, phraseNames(task)...)
	names = append(names, snakeNames(task)...)
	names = append(names, suffixGuesses(task)...)
	return dedupe(names)
}

// quotedNames captures word runs inside single, double, or back quotes.
func quotedNames(task string) []string {
	var names []string
	for _, m := range quotedRe.FindAllStringSubmatch(task, -1) {
		names = append(names, m[1])
	}
	return names
}

// prefixedNames captures tokens carrying conventional warehouse prefixes
// such as dim_, fct_, and stg_.
func prefixedNames(task string) []string {
	var names []string
	for _, m := range prefixRe.FindAllStringSubmatch(task, -1) {
		names = append(names, m[1])
	}
	return names
}

// phraseNames captures both words of "add X (column) to Y" and
// "create X (column) in Y" templates.
func phraseNames(task string) []string {
	var names []string
	for _, re := range []*regexp.Regexp{addToRe, createInRe} {
		for _, m := range re.FindAllStringSubmatch(task, -1) {
			names = append(names, m[1], m[2])
		}
	}
	return names
}

// snakeNames captures lowercase underscore-separated words longer than
// three characters, the usual shape of model and column names.
func snakeNames(task string) []string {
	var names []string
	for _, m := range wordRe.FindAllStringSubmatch(strings.ToLower(task), -1) {
		word := m[1]
		if strings.Contains(word, "_") && len(word) > 3 {
			names = append(names, word)
		}
	}
	return names
}

// suffixGuesses expands every lowercase word longer than four characters
// into the word itself plus speculative column-name variants. The bare word
// leads so that single-word entity names can still hit the exact-match
// lookup; the suffixed forms over-generate on purpose for fuzzy search.
func suffixGuesses(task string) []string {
	var names []string
	for _, m := range wordRe.FindAllStringSubmatch(strings.ToLower(task), -1) {
		word := m[1]
		if len(word) <= 4 {
			continue
		}
		names = append(names, word)
		for _, suffix := range guessSuffixes {
			names = append(names, word+suffix)
		}
	}
	return names
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var unique []string
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		unique = append(unique, n)
	}
	return unique
}
