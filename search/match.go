// Copyright (C) 2025 Mono Technologies Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

// Package search scores application names against a typed query using
// case-insensitive subsequence matching. A candidate matches when every
// query character appears in it, in order; the score rewards short names,
// tight spans, runs of adjacent matches and matches near the start.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/we-are-mono/launchdock/catalog"
)

// Scoring weights. Each signal is bounded and independent; the sum
// orders candidates, the individual values carry no external meaning.
const (
	lengthWeight      = 1000.0
	spanWeight        = 1000.0
	consecutiveWeight = 200.0
	earlyStartWeight  = 50.0
)

// Match pairs an application with its score for the current query.
type Match struct {
	ID    string
	Name  string
	Score float64
}

// Score rates candidate against query. The second return value reports
// whether candidate matches at all; when false the score is meaningless.
// An empty query matches everything with a fixed baseline score.
func Score(query, candidate string) (float64, bool) {
	if query == "" {
		return 1, true
	}
	if candidate == "" {
		return 0, false
	}

	q := []rune(strings.ToLower(query))
	c := []rune(strings.ToLower(candidate))

	positions := make([]int, 0, len(q))
	ci := 0
	for _, qr := range q {
		found := -1
		for ; ci < len(c); ci++ {
			if c[ci] == qr {
				found = ci
				ci++
				break
			}
		}
		if found < 0 {
			return 0, false
		}
		positions = append(positions, found)
	}

	first := positions[0]
	last := positions[len(positions)-1]
	span := last - first + 1

	score := lengthWeight / float64(len(c))
	score += spanWeight / float64(span)
	for i := 1; i < len(positions); i++ {
		gap := positions[i] - positions[i-1]
		score += consecutiveWeight / float64(gap)
	}
	score += earlyStartWeight / float64(first+1)

	return score, true
}

// Rank scores every application in the snapshot against query and
// returns the matches ordered best-first. Ties break toward shorter
// names, then case-insensitive alphabetical order.
func Rank(query string, snap *catalog.Snapshot) []Match {
	if snap == nil {
		return nil
	}

	matches := make([]Match, 0, snap.Len())
	for _, app := range snap.Apps {
		score, ok := Score(query, app.Name)
		if !ok {
			continue
		}
		matches = append(matches, Match{ID: app.ID, Name: app.Name, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		li, lj := utf8.RuneCountInString(matches[i].Name), utf8.RuneCountInString(matches[j].Name)
		if li != lj {
			return li < lj
		}
		return strings.ToLower(matches[i].Name) < strings.ToLower(matches[j].Name)
	})

	return matches
}
