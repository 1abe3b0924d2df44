package timelineutil

import (
	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/pkg/rcerr"
)

const (
	SideBlue = "Blue"
	SideRed  = "Red"
)

type identity struct {
	ChampionName string
	TeamSide     string
}

// eventRefFields enumerates the participant-reference field kinds an event
// may carry, with the name pair each one is rewritten to.
var eventRefFields = []struct {
	Field    string
	Champion string
	Side     string
}{
	{"participantId", "championName", "teamStartingSide"},
	{"killerId", "killerChampionName", "killerTeamStartingSide"},
	{"victimId", "victimChampionName", "victimTeamStartingSide"},
	{"creatorId", "creatorChampionName", "creatorTeamStartingSide"},
}

func sideFromTeamID(teamID int) (string, error) {
	switch teamID {
	case 100:
		return SideBlue, nil
	case 200:
		return SideRed, nil
	}
	return "", rcerr.ErrIntegrity.Msg("unrecognized teamId %d in match summary", teamID)
}

// MapIdentities rewrites every numeric participant reference in the timeline
// into a champion-name plus team-side pair, joining the timeline's
// participantId↔puuid table against the match summary's puuid↔champion/team
// roster. The numeric field is deleted after substitution. A reference id of
// zero denotes "no participant" (e.g. an execution's killerId) and is deleted
// without substitution. Any reference that cannot be resolved, and any teamId
// other than 100/200, is an integrity error: the two records disagree on the
// roster and silently mislabeling would corrupt all downstream analysis.
//
// Mutates the timeline in place and returns it.
func MapIdentities(t *model.Timeline, m *model.Match) (*model.Timeline, error) {
	byPUUID := make(map[string]*model.MatchParticipant, len(m.Info.Participants))
	for _, p := range m.Info.Participants {
		byPUUID[p.PUUID] = p
	}

	byID := make(map[int64]identity, len(t.Info.Participants))
	for _, tp := range t.Info.Participants {
		mp, ok := byPUUID[tp.PUUID]
		if !ok {
			return nil, rcerr.ErrIntegrity.Msg("timeline participant %d (puuid %s) is missing from the match summary roster", tp.ParticipantID, tp.PUUID)
		}
		side, err := sideFromTeamID(mp.TeamID)
		if err != nil {
			return nil, err
		}
		byID[int64(tp.ParticipantID)] = identity{ChampionName: mp.ChampionName, TeamSide: side}
	}

	for _, frame := range t.Frames() {
		for _, event := range frame.Events {
			for _, ref := range eventRefFields {
				raw, ok := event[ref.Field]
				if !ok {
					continue
				}
				id, ok := asInt64(raw)
				if !ok {
					return nil, rcerr.ErrIntegrity.Msg("event field %s carries non-numeric value %v", ref.Field, raw)
				}
				if id == 0 {
					delete(event, ref.Field)
					continue
				}
				ident, ok := byID[id]
				if !ok {
					return nil, rcerr.ErrIntegrity.Msg("event field %s references unknown participant %d", ref.Field, id)
				}
				event[ref.Champion] = ident.ChampionName
				event[ref.Side] = ident.TeamSide
				delete(event, ref.Field)
			}
		}

		for _, pf := range frame.ParticipantFrames {
			raw, ok := pf["participantId"]
			if !ok {
				continue
			}
			id, ok := asInt64(raw)
			if !ok {
				return nil, rcerr.ErrIntegrity.Msg("participant frame carries non-numeric participantId %v", raw)
			}
			if id == 0 {
				delete(pf, "participantId")
				continue
			}
			ident, ok := byID[id]
			if !ok {
				return nil, rcerr.ErrIntegrity.Msg("participant frame references unknown participant %d", id)
			}
			pf["championName"] = ident.ChampionName
			pf["teamStartingSide"] = ident.TeamSide
			delete(pf, "participantId")
		}
	}

	return t, nil
}
