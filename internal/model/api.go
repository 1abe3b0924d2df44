package model

import (
	"gopkg.in/guregu/null.v3"
)

// FetchGamesRequest identifies the player either by Riot ID (gameName plus
// optional tagLine) or directly by puuid, which skips the account lookup.
type FetchGamesRequest struct {
	GameName string `json:"gameName" validate:"required_without=PUUID"`
	TagLine  string `json:"tagLine"`
	Champion string `json:"champion" validate:"required"`
	PUUID    string `json:"puuid"`
	Count    int    `json:"count"`
}

// GameInfo is one fetched game summarized for selection. ID is the artifact
// base name (game_<YYYYMMDD>_<id>) under which the log and timeline were
// persisted.
type GameInfo struct {
	ID       string `json:"id"`
	MatchID  string `json:"matchId"`
	Champion string `json:"champion"`
	Result   string `json:"result"`
	KDA      string `json:"kda"`
	Duration string `json:"duration"`
	Date     string `json:"date"`
}

type FetchGamesResponse struct {
	Games    []*GameInfo `json:"games"`
	Champion string      `json:"champion"`
	PUUID    string      `json:"puuid"`
}

type AnalyzeGamesRequest struct {
	GameIDs  []string `json:"gameIds" validate:"required,min=1"`
	Champion string   `json:"champion" validate:"required"`
	PUUID    string   `json:"puuid" validate:"required"`
	Voice    string   `json:"voice"`
}

type PhaseAnalyses struct {
	Early null.String `json:"early"`
	Mid   null.String `json:"mid"`
	Late  null.String `json:"late"`
}

type GameAnalysis struct {
	GameID           string         `json:"gameId"`
	MatchID          string         `json:"matchId"`
	Champion         string         `json:"champion"`
	AudioURL         null.String    `json:"audioUrl"`
	Summary          string         `json:"summary"`
	DetailedAnalysis string         `json:"detailedAnalysis"`
	PhaseAnalyses    *PhaseAnalyses `json:"phaseAnalyses,omitempty"`
}

type AnalyzeGamesResponse struct {
	GameAnalyses           []*GameAnalysis `json:"gameAnalyses"`
	GlobalAnalysisURL      null.String     `json:"globalAnalysisUrl"`
	GlobalSummary          null.String     `json:"globalSummary"`
	GlobalDetailedAnalysis null.String     `json:"globalDetailedAnalysis"`
}

type VoicesResponse struct {
	Voices []string `json:"voices"`
}
