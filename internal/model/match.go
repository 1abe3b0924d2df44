package model

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type MatchMetadata struct {
	MatchID string `json:"matchId"`
}

// MatchParticipant is the subset of end-of-game participant stats the
// pipeline consumes. The full record is preserved in Match.raw.
type MatchParticipant struct {
	PUUID          string `json:"puuid"`
	ChampionName   string `json:"championName"`
	TeamID         int    `json:"teamId"`
	Kills          int    `json:"kills"`
	Deaths         int    `json:"deaths"`
	Assists        int    `json:"assists"`
	Win            bool   `json:"win"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
}

type MatchInfo struct {
	GameCreation int64               `json:"gameCreation"`
	GameDuration int64               `json:"gameDuration"`
	GameMode     string              `json:"gameMode"`
	Participants []*MatchParticipant `json:"participants"`
}

// Match is the end-of-game summary record. Typed fields cover what the
// pipeline and API need; raw keeps every field the upstream provider sent so
// persisted artifacts stay lossless.
type Match struct {
	Metadata *MatchMetadata `json:"metadata"`
	Info     *MatchInfo     `json:"info"`

	raw map[string]any
}

func ParseMatch(b []byte) (*Match, error) {
	var m Match
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal match")
	}
	if err := json.Unmarshal(b, &m.raw); err != nil {
		return nil, errors.Wrap(err, "failed to rebuild match tree")
	}
	if m.Info == nil {
		m.Info = &MatchInfo{}
	}
	return &m, nil
}

func (m *Match) MatchID() string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	return m.Metadata.MatchID
}

// Tree returns the full generic JSON tree of the match record.
func (m *Match) Tree() map[string]any {
	return m.raw
}

func (m *Match) ParticipantByPUUID(puuid string) (*MatchParticipant, bool) {
	if m == nil || m.Info == nil {
		return nil, false
	}
	for _, p := range m.Info.Participants {
		if p.PUUID == puuid {
			return p, true
		}
	}
	return nil, false
}
