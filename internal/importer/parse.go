// Package importer reads the annotated-games text format and stores the
// games it describes.
//
// A file holds any number of blocks:
//
//	===JOGO===
//	VARIANT: Italian Game
//	EVENT: Club training
//	WHITE: Alice
//	BLACK: Bob
//	PGN: 1. e4 e5 2. Nf3 Nc6 3. Bc4
//	---EXPLICAÇÕES---
//	PLY 0: Before the first move.
//	PLY 5: The bishop eyes f7.
//	===FIM===
//
// ===GAME===, ===END=== and ---ANNOTATIONS--- are accepted in place of the
// Portuguese markers.
package importer

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"annochess/internal/catalog"
)

var (
	startMarker = regexp.MustCompile(`===(?:JOGO|GAME)===`)
	endMarker   = regexp.MustCompile(`===(?:FIM|END)===`)
	notesMarker = regexp.MustCompile(`---(?:EXPLICAÇÕES|ANNOTATIONS)---`)
	plyMarker   = regexp.MustCompile(`PLY\s+(\d+):`)
)

type field struct {
	name string
	re   *regexp.Regexp
	set  func(*catalog.Game, string)
}

var fields = []field{
	{"VARIANT", regexp.MustCompile(`VARIANT:[ \t]*(.+)`), func(g *catalog.Game, v string) { g.VariantName = v }},
	{"EVENT", regexp.MustCompile(`EVENT:[ \t]*(.+)`), func(g *catalog.Game, v string) { g.Event = v }},
	{"WHITE", regexp.MustCompile(`WHITE:[ \t]*(.+)`), func(g *catalog.Game, v string) { g.WhitePlayer = v }},
	{"BLACK", regexp.MustCompile(`BLACK:[ \t]*(.+)`), func(g *catalog.Game, v string) { g.BlackPlayer = v }},
	{"PGN", regexp.MustCompile(`PGN:[ \t]*(.+)`), func(g *catalog.Game, v string) { g.PGN = v }},
}

// Skip records a block that was not turned into a game.
type Skip struct {
	Block  int    `json:"block"`
	Reason string `json:"reason"`
}

// Parse splits r into games. Blocks without an end marker or missing a
// metadata field are reported in the returned skips. Within a game, empty
// annotations are dropped and a repeated ply keeps its first text.
func Parse(r io.Reader) ([]catalog.Game, []Skip, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")

	var (
		games []catalog.Game
		skips []Skip
	)
	for i, block := range startMarker.Split(content, -1)[1:] {
		n := i + 1
		end := endMarker.FindStringIndex(block)
		if end == nil {
			skips = append(skips, Skip{Block: n, Reason: "missing end marker"})
			continue
		}
		g, err := parseBlock(block[:end[0]])
		if err != nil {
			skips = append(skips, Skip{Block: n, Reason: err.Error()})
			continue
		}
		games = append(games, g)
	}
	return games, skips, nil
}

func parseBlock(block string) (catalog.Game, error) {
	header, notes := block, ""
	if loc := notesMarker.FindStringIndex(block); loc != nil {
		header, notes = block[:loc[0]], block[loc[1]:]
	}

	var g catalog.Game
	for _, f := range fields {
		m := f.re.FindStringSubmatch(header)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			return catalog.Game{}, fmt.Errorf("missing %s", f.name)
		}
		f.set(&g, strings.TrimSpace(m[1]))
	}
	g.Explanations = parseAnnotations(notes)
	return g, nil
}

func parseAnnotations(notes string) []catalog.Annotation {
	out := []catalog.Annotation{}
	seen := make(map[int]bool)
	locs := plyMarker.FindAllStringSubmatchIndex(notes, -1)
	for i, m := range locs {
		end := len(notes)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		ply, err := strconv.Atoi(notes[m[2]:m[3]])
		if err != nil {
			continue
		}
		text := strings.TrimSpace(notes[m[1]:end])
		if text == "" || seen[ply] {
			continue
		}
		seen[ply] = true
		out = append(out, catalog.Annotation{
			Ply:        ply,
			MoveNumber: catalog.MoveNumberForPly(ply),
			Color:      catalog.ColorForPly(ply),
			Content:    text,
		})
	}
	return out
}
