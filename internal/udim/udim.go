// Package udim classifies texture documents by their material names. A
// document is UDIM-tiled when every material is named after a tile index in
// the 1001-1999 range.
package udim

import (
	"regexp"
	"strconv"
)

// Sentinel names the single texture set that represents a whole UDIM group.
const Sentinel = "UDIM"

// Token is the tile placeholder used in texture references.
const Token = "<UDIM>"

var (
	tilePattern  = regexp.MustCompile(`^1[0-9]{3}$`)
	tileInString = regexp.MustCompile(`1[0-9]{3}`)
)

// IsTile reports whether name is a full 4-digit tile index starting with 1.
func IsTile(name string) bool {
	return tilePattern.MatchString(name)
}

// Classify reports whether the document is a single UDIM texture set. Every
// name must be a tile index; the first non-matching name ends the scan. An
// empty list classifies as UDIM (nothing fails the match).
func Classify(names []string) bool {
	for _, name := range names {
		if !IsTile(name) {
			return false
		}
	}
	return true
}

// TileIndex returns the numeric tile index for name.
func TileIndex(name string) (int, bool) {
	if !IsTile(name) {
		return 0, false
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Placeholder replaces the last tile index in a file reference with Token, so
// per-tile files collapse to one texture reference.
func Placeholder(ref string) string {
	loc := lastTile(ref)
	if loc == nil {
		return ref
	}
	return ref[:loc[0]] + Token + ref[loc[1]:]
}

// TileOf returns the tile index that Placeholder would replace in ref.
func TileOf(ref string) (int, bool) {
	loc := lastTile(ref)
	if loc == nil {
		return 0, false
	}
	return TileIndex(ref[loc[0]:loc[1]])
}

func lastTile(ref string) []int {
	locs := tileInString.FindAllStringIndex(ref, -1)
	if len(locs) == 0 {
		return nil
	}
	return locs[len(locs)-1]
}
