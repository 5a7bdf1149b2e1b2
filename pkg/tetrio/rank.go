package tetrio

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Rank is a tier on the TETR.IO league ladder.
// The zero value is Unranked, every other tier is strictly above it.
type Rank int

const (
	RankUnranked Rank = iota
	RankD
	RankDPlus
	RankCMinus
	RankC
	RankCPlus
	RankBMinus
	RankB
	RankBPlus
	RankAMinus
	RankA
	RankAPlus
	RankSMinus
	RankS
	RankSPlus
	RankSS
	RankU
	RankX
)

// rankCodes holds the ladder codes in ascending tier order.
// The API uses "z" for unranked players.
var rankCodes = []string{
	"z", "d", "d+", "c-", "c", "c+", "b-", "b", "b+",
	"a-", "a", "a+", "s-", "s", "s+", "ss", "u", "x",
}

// rankColors is the embed color used for each tier.
var rankColors = map[Rank]string{
	RankUnranked: "828282",
	RankD:        "856C84",
	RankDPlus:    "815880",
	RankCMinus:   "6C417C",
	RankC:        "67287B",
	RankCPlus:    "522278",
	RankBMinus:   "5949BE",
	RankB:        "4357B5",
	RankBPlus:    "4880B2",
	RankAMinus:   "35AA8C",
	RankA:        "3EA750",
	RankAPlus:    "43b536",
	RankSMinus:   "B79E2B",
	RankS:        "d19e26",
	RankSPlus:    "dbaf37",
	RankSS:       "e39d3b",
	RankU:        "c75c2e",
	RankX:        "b852bf",
}

// ParseRank converts a ladder code to a Rank.
// Unknown codes are treated as unranked, so it never fails.
func ParseRank(code string) Rank {
	normalized := strings.ToLower(strings.TrimSpace(code))
	for i, c := range rankCodes {
		if c == normalized {
			return Rank(i)
		}
	}
	return RankUnranked
}

// RankCount returns how many tiers the ladder has, unranked included.
func RankCount() int {
	return len(rankCodes)
}

// Code returns the ladder code of the rank.
func (r Rank) Code() string {
	if r < RankUnranked || int(r) >= len(rankCodes) {
		return rankCodes[RankUnranked]
	}
	return rankCodes[r]
}

// String implements fmt.Stringer using the ladder code.
func (r Rank) String() string {
	return r.Code()
}

// Advance returns the tier n steps above r, saturating at X.
func (r Rank) Advance(n int) Rank {
	if n <= 0 {
		return r
	}
	advanced := int(r) + n
	if advanced >= int(RankX) {
		return RankX
	}
	return Rank(advanced)
}

// Color returns the hex color associated with the rank.
func (r Rank) Color() string {
	if color, ok := rankColors[r]; ok {
		return color
	}
	return rankColors[RankUnranked]
}

// IconURL returns the official rank badge image.
func (r Rank) IconURL() string {
	return fmt.Sprintf("https://tetr.io/res/league-ranks/%s.png", r.Code())
}

// MarshalJSON writes the rank as its ladder code.
func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Code())
}

// UnmarshalJSON reads a ladder code, falling back to unranked on unknown values.
func (r *Rank) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	*r = ParseRank(code)
	return nil
}

// Value stores the rank as its code, matching the rank_type database enum.
func (r Rank) Value() (driver.Value, error) {
	return r.Code(), nil
}

// Scan reads the rank back from its database representation.
func (r *Rank) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*r = RankUnranked
	case string:
		*r = ParseRank(v)
	case []byte:
		*r = ParseRank(string(v))
	default:
		return fmt.Errorf("unsupported rank column type %T", value)
	}
	return nil
}
