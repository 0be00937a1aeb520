// Package schemas embeds the JSON Schemas that describe emitted artifacts.
package schemas

import "embed"

// Schema file names
const (
	MatchResult = "match_result.schema.json"
	RankResults = "rank_results.schema.json"
)

// FS holds every *.schema.json in this directory.
//
//go:embed *.schema.json
var FS embed.FS
