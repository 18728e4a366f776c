// Package output provides game output formatting: PGN export, source
// layout replay, JSON and text board diagrams.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/config"
)

// SerializeGame returns the PGN text of a game. A parsed game that has not
// been modified since is reproduced exactly as it appeared in its source;
// any other game is written in export format.
func SerializeGame(game *chess.Game, cfg *config.Config) string {
	text, _ := serializeGame(game, cfg)
	return text
}

// SerializeGames returns the PGN text of several games. Unmodified parsed
// games are concatenated verbatim, which reproduces a parsed document
// exactly. A game whose text does not end in whitespace, or that sits next
// to an export-format game, is followed by a blank line.
func SerializeGames(games []*chess.Game, cfg *config.Config) string {
	var sb strings.Builder
	var j joiner
	for _, game := range games {
		text, replayed := serializeGame(game, cfg)
		sb.WriteString(j.separator(replayed))
		sb.WriteString(text)
		j.wrote(text, replayed)
	}
	return sb.String()
}

// ExportGame writes a game in export format regardless of any recorded
// source layout.
func ExportGame(game *chess.Game, cfg *config.Config) string {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	var sb strings.Builder
	_ = writeExport(&sb, game, cfg.Output)
	return sb.String()
}

func serializeGame(game *chess.Game, cfg *config.Config) (string, bool) {
	if layout, ok := game.SourceLayout(); ok {
		return layout.String(), true
	}
	return ExportGame(game, cfg), false
}

// joiner tracks the end of the output so that every game starts on a
// fresh line. Replayed games that follow one another with whitespace in
// between are joined as they are.
type joiner struct {
	started      bool
	prevReplayed bool
	tail         string
}

func (j *joiner) separator(replayed bool) string {
	if !j.started {
		return ""
	}
	if replayed && j.prevReplayed && endsInSpace(j.tail) {
		return ""
	}
	switch {
	case strings.HasSuffix(j.tail, "\n\n"):
		return ""
	case strings.HasSuffix(j.tail, "\n"):
		return "\n"
	}
	return "\n\n"
}

func endsInSpace(s string) bool {
	return s != "" && strings.ContainsRune(" \t\r\n", rune(s[len(s)-1]))
}

func (j *joiner) wrote(text string, replayed bool) {
	j.started = true
	j.prevReplayed = replayed
	j.tail += text
	if len(j.tail) > 2 {
		j.tail = j.tail[len(j.tail)-2:]
	}
}

// writeExport writes the tag section and the movetext of a game.
func writeExport(w io.Writer, game *chess.Game, cfg *config.OutputConfig) error {
	if cfg == nil {
		cfg = config.NewOutputConfig()
	}
	n, err := writeTags(w, game.Tags())
	if err != nil {
		return err
	}
	if n > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return writeMoves(w, game, cfg)
}

// writeTags outputs the game tags in insertion order and returns how many
// were written.
func writeTags(w io.Writer, tags *chess.TagMap) (int, error) {
	keys := tags.Keys()
	for _, tag := range keys {
		if _, err := fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(tags.Get(tag))); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	// Fast path: if no escaping needed, return original string
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// writeMoves outputs the movetext and the result.
func writeMoves(w io.Writer, game *chess.Game, cfg *config.OutputConfig) error {
	ow := NewOutputWriter(w, int(cfg.MaxLineLength))

	// A black move needs its own number at the start and after a comment.
	afterComment := false
	if cfg.KeepComments {
		for _, comment := range game.PrefixComments() {
			ow.Write(formatComment(comment))
			afterComment = true
		}
	}

	for ply := 1; ply <= game.PlyCount(); ply++ {
		pos := game.PositionAt(ply - 1)

		if cfg.KeepMoveNumbers {
			if pos.ToMove == chess.White {
				ow.Write(fmt.Sprintf("%d.", pos.MoveNumber))
			} else if ply == 1 || afterComment {
				ow.Write(fmt.Sprintf("%d...", pos.MoveNumber))
			}
		}
		ow.Write(game.SAN(ply))
		afterComment = false

		ann := game.Annotation(ply)
		if cfg.KeepNAGs {
			for _, nag := range ann.NAGs {
				ow.Write(nag)
			}
		}
		if cfg.KeepComments {
			for _, comment := range ann.Comments {
				ow.Write(formatComment(comment))
				afterComment = true
			}
		}
	}

	ow.Write(string(game.Result()))
	ow.NewLine()
	return ow.Err()
}

func formatComment(text string) string {
	return "{" + text + "}"
}
