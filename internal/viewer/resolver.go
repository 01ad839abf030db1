package viewer

import (
	"strconv"
	"strings"
)

// Renderer renders a message template by key.
type Renderer interface {
	Render(key string, data any) (string, error)
}

// Message keys looked up in the Renderer.
const (
	KeyPrompt      = "annotation.prompt"
	KeyWelcome     = "annotation.welcome"
	KeyPlaceholder = "annotation.placeholder"
	KeyParseError  = "annotation.parse_error"
	KeyCounterZero = "counter.start"
	KeyCounterMove = "counter.move"
	KeyWhite       = "counter.white"
	KeyBlack       = "counter.black"
	KeyPlayers     = "panel.players"
)

var fallbacks = map[string]string{
	KeyPrompt:      "Select a variant to get started!",
	KeyPlaceholder: "...",
	KeyParseError:  "Error: the move history of this game is invalid or could not be loaded.",
	KeyCounterZero: "Initial position",
	KeyWhite:       "White",
	KeyBlack:       "Black",
}

// Resolver picks the commentary for the current ply.
type Resolver struct {
	Messages Renderer
}

// NewResolver returns a resolver backed by msgs. A nil msgs uses built-in text.
func NewResolver(msgs Renderer) *Resolver {
	return &Resolver{Messages: msgs}
}

// Resolve returns the annotation text for s:
// the stored content of the first annotation at the current ply, else a
// welcome naming the variant at ply 0, else the placeholder. Without a
// selection it returns the prompt; a game whose movetext failed to parse
// shows the parse error.
func (r *Resolver) Resolve(s State) string {
	g, ok := s.Game()
	if !ok {
		return r.text(KeyPrompt, nil)
	}
	if s.Err() != nil {
		return r.text(KeyParseError, nil)
	}
	if a, found := g.AnnotationAt(s.Ply()); found {
		return a.Content
	}
	if s.Ply() == 0 {
		return r.welcome(g.VariantName)
	}
	return r.text(KeyPlaceholder, nil)
}

// Counter returns the move counter label for the current ply.
func (r *Resolver) Counter(s State) string {
	p := s.Ply()
	if p == 0 {
		return r.text(KeyCounterZero, nil)
	}
	side := r.text(KeyBlack, nil)
	if p%2 == 1 {
		side = r.text(KeyWhite, nil)
	}
	number := (p + 1) / 2
	if r.Messages != nil {
		if out, err := r.Messages.Render(KeyCounterMove, map[string]any{"Number": number, "Side": side}); err == nil {
			return out
		}
	}
	return "Move " + strconv.Itoa(number) + " - " + side
}

// Players returns the players line for the selected game, empty without one.
func (r *Resolver) Players(s State) string {
	g, ok := s.Game()
	if !ok {
		return ""
	}
	if r.Messages != nil {
		if out, err := r.Messages.Render(KeyPlayers, map[string]any{"White": g.WhitePlayer, "Black": g.BlackPlayer}); err == nil {
			return out
		}
	}
	return "White: " + g.WhitePlayer + " vs Black: " + g.BlackPlayer
}

// Title returns the variant name, or the prompt without a selection.
func (r *Resolver) Title(s State) string {
	if g, ok := s.Game(); ok {
		return g.VariantName
	}
	return r.text(KeyPrompt, nil)
}

func (r *Resolver) welcome(variant string) string {
	if r.Messages != nil {
		if out, err := r.Messages.Render(KeyWelcome, map[string]any{"Variant": variant}); err == nil {
			return out
		}
	}
	return "You chose: " + variant + ".\nWe are at the initial position.\nStep forward and back through the moves to read the explanations."
}

func (r *Resolver) text(key string, data any) string {
	if r.Messages != nil {
		if out, err := r.Messages.Render(key, data); err == nil {
			return out
		}
	}
	return fallbacks[key]
}

// Paragraphs splits annotation text on newlines, one paragraph per line.
func Paragraphs(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
