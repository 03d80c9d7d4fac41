package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// normalizeHeader maps "Batting Style" / "batting-style" / "battingStyle"
// style headers onto one canonical key.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// LoadCSV parses a roster CSV into validated, defaulted players. The first
// row is the header; column order does not matter. Rows with a blank name
// are skipped. IDs are assigned in row order and are stable for the batch.
func LoadCSV(r io.Reader) ([]Player, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading roster csv: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("roster csv has no header row")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[normalizeHeader(h)] = i
	}
	get := func(row []string, names ...string) string {
		for _, n := range names {
			if idx, ok := cols[n]; ok && idx < len(row) {
				if v := strings.TrimSpace(row[idx]); v != "" {
					return v
				}
			}
		}
		return ""
	}

	var out []Player
	for _, row := range rows[1:] {
		name := get(row, "name", "player_name", "player")
		if name == "" {
			continue
		}
		p := Player{
			Name:         name,
			Role:         get(row, "role", "position"),
			BattingStyle: get(row, "batting_style", "batting"),
			BowlingStyle: get(row, "bowling_style", "bowling"),
			ImageSource:  get(row, "image_source", "image_url", "image", "photo"),
		}
		if p.Role == "" {
			p.Role = StyleUnknown
		}
		if p.BattingStyle == "" {
			p.BattingStyle = StyleUnknown
		}
		if p.BowlingStyle == "" {
			p.BowlingStyle = StyleUnknown
		}
		p.FormNumber = parseFormNumber(get(row, "form_number", "form", "rating"))
		out = append(out, p)
	}
	AssignIDs(out)
	return out, nil
}

// LoadFile reads a roster CSV from disk.
func LoadFile(path string) ([]Player, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return LoadCSV(fp)
}

// AssignIDs fills in batch-stable IDs for any player missing one.
// IDs are 1-based in list order.
func AssignIDs(players []Player) {
	for i := range players {
		if players[i].ID == "" {
			players[i].ID = fmt.Sprintf("player-%03d", i+1)
		}
	}
}

// parseFormNumber falls back to the default rating for anything unparsable.
// Out-of-range values pass through: they must render, not fail.
func parseFormNumber(s string) int {
	if s == "" || s == "-" {
		return DefaultFormNumber
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return DefaultFormNumber
	}
	return v
}
