package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/riftcoach/backend/internal/model"
	"github.com/riftcoach/backend/internal/pkg/rcerr"
	"github.com/riftcoach/backend/internal/util/timelineutil"
)

const matchLogAnalysisPrompt = `You are an expert League of Legends analyst. You will analyze the MATCH LOG data to understand the overall game and player performance.

Your goal is to extract key information and provide a high-level analysis that will be used to inform a detailed timeline review.

You will receive the MATCH LOG containing final game statistics, all player performance data, team compositions, final builds and runes, and end-game metrics (damage, gold, CS, KDA, etc.).

Focus on the TARGET PLAYER and provide:

## 1. GAME CONTEXT SUMMARY
- Champion, role, and lane matchup
- **Side played (Red/Blue)** - important for objectives and camera angle
- Game result (W/L) and duration
- Team compositions (both teams)
- Final score and gold difference

## 2. PLAYER PERFORMANCE METRICS
- Final KDA and kill participation %
- CS/min and total gold earned
- Damage dealt (total, to champions, taken)
- Vision score and control wards
- Performance grade (S/A/B/C/D/F) with reasoning

## 3. BUILD AND RUNES ANALYSIS
- Rune choices - appropriate for matchup?
- Item build path and final build
- Any notable build decisions (good or questionable)

## 4. COMPARATIVE ANALYSIS
- How did they compare to their lane opponent?
- Standout stats and any glaring weaknesses

## 5. DEATH ANALYSIS
- Total deaths and when they occurred (timestamps if available)
- Were deaths in good fights or solo misplays?

## 6. TEAM CONTRIBUTION
- Damage and gold share % vs team
- Objective participation

## 7. KEY CONTEXT FOR TIMELINE REVIEW
Summarize the most important things to look for in the detailed timeline: key moments or turning points to investigate, specific time periods that need deep analysis, and questions to answer in the timeline review.

FORMAT YOUR RESPONSE AS A STRUCTURED SUMMARY - NOT a spoken review yet. Use clear sections and bullet points. This will be fed into the timeline analysis.

Be analytical and factual. Save the coaching tone for the final output.`

const earlyGamePrompt = `You are an expert League of Legends coach analyzing the EARLY GAME phase (0-15 minutes).

You will receive:
1. MATCH CONTEXT - Overall game summary and player performance
2. EARLY GAME TIMELINE (0-15 min) - Frame-by-frame data for the laning phase
   - Each participantFrame includes championName field
   - Each event includes championName for the participant
   - Kill events include killerChampionName and victimChampionName

**IMPORTANT**: Focus ONLY on the early game phase. Do not discuss mid or late game events. Your analysis will be combined with separate mid and late game analyses later.

## EARLY GAME ANALYSIS (0-15 minutes)
Analyze the laning phase with specific timestamps: lane matchup and initial strategy, CS patterns and item timings, first blood and early kills and deaths, trading patterns and wave management, jungle interactions, vision control, level advantages, early rotations, and tower plates.

## HIDDEN MECHANICS & MICRO PLAY ANALYSIS
Look for champion-specific execution details that stats don't show: skill shot accuracy and positioning, ability combo execution, resource management, auto-attack weaving, wasted abilities and missed opportunities, and positioning micro-mistakes.

GUIDELINES:
- Reference specific timestamps (e.g., "at 8:30")
- Champion names are directly in the data (championName field)
- Identify good habits and mistakes with examples
- Keep it conversational and direct
- Stay focused on 0-15 minutes ONLY

Provide your early game analysis:`

const midGamePrompt = `You are an expert League of Legends coach analyzing the MID GAME phase (15-30 minutes).

You will receive:
1. MATCH CONTEXT - Overall game summary and player performance
2. MID GAME TIMELINE (15-30 min) - Frame-by-frame data for mid game
   - Each participantFrame includes championName field
   - Each event includes championName for the participant
   - Kill events include killerChampionName and victimChampionName

**IMPORTANT**: Focus ONLY on the mid game phase (15-30 minutes). Do not discuss early or late game events. Your analysis will be combined with separate early and late game analyses later.

## MID GAME ANALYSIS (15-30 minutes)
Analyze teamfighting and objective play with specific timestamps: the transition out of laning, major teamfights (positioning, target selection, execution), objective contests (dragons, herald, towers, baron setup), map movements and rotations, item power spikes, deaths and their impact on objectives, and vision control.

## HIDDEN MECHANICS & MICRO PLAY ANALYSIS
Look for execution details in teamfights and skirmishes: ability usage in fights, positioning errors that led to deaths, missed skill shots, cooldown management, unused summoner spells or item actives, and overextension or hesitation in key moments.

GUIDELINES:
- Reference specific timestamps for teamfights and objectives
- Champion names are directly in the data (championName field)
- Analyze decision-making AND execution in fights
- Keep it conversational and direct
- Stay focused on 15-30 minutes ONLY

Provide your mid game analysis:`

const lateGamePrompt = `You are an expert League of Legends coach analyzing the LATE GAME phase (30+ minutes).

You will receive:
1. MATCH CONTEXT - Overall game summary and player performance
2. LATE GAME TIMELINE (30+ min) - Frame-by-frame data for late game
   - Each participantFrame includes championName field
   - Each event includes championName for the participant
   - Kill events include killerChampionName and victimChampionName

**IMPORTANT**: Focus ONLY on the late game phase (30+ minutes). Do not discuss early or mid game events. Your analysis will be combined with separate early and mid game analyses later.

## LATE GAME ANALYSIS (30+ minutes)
Analyze high-stakes moments and game-ending plays with specific timestamps: final teamfights and their outcomes, Baron/Elder fights, death timers and their impact, risk management and decision-making, late game itemization, and how the game was won or lost.

## HIDDEN MECHANICS & CRITICAL EXECUTION
Look for high-pressure execution details: clutch ability usage or failure, summoner spell usage in game-deciding moments, positioning in high-stakes fights, target selection in final teamfights, item actives usage, and failure to execute the win condition.

GUIDELINES:
- Reference specific timestamps for crucial moments
- Champion names are directly in the data (championName field)
- Identify what sealed the victory or caused the loss
- Keep it conversational and direct
- Stay focused on 30+ minutes ONLY

Provide your late game analysis:`

const finalSynthesisPrompt = `You are an expert League of Legends coach synthesizing a complete VOD review.

You will receive:
1. MATCH CONTEXT - Overall game statistics and performance
2. EARLY GAME ANALYSIS - Detailed laning phase review (0-15 min)
3. MID GAME ANALYSIS - Detailed mid game review (15-30 min)
4. LATE GAME ANALYSIS - Detailed late game review (30+ min)

Your goal is to synthesize these analyses into a cohesive, engaging spoken review.

Create a natural, flowing coaching review with these sections:

## 1. INTRODUCTION (30 seconds)
Welcome and game overview (champion, result, overall grade); set the tone for the review.

## 2. EARLY GAME (1.5 minutes)
Synthesize the early game analysis into a flowing narrative, keeping the specific timestamps and key moments.

## 3. MID GAME (1.5 minutes)
Synthesize the mid game analysis, connect to early game momentum and highlight turning points.

## 4. LATE GAME (1 minute)
Synthesize the late game analysis and explain how the game was won or lost.

## 5. KEY STRENGTHS (30 seconds)
2-3 specific excellent plays across all phases, with positive reinforcement.

## 6. AREAS FOR IMPROVEMENT (45 seconds)
3-4 specific mistakes or patterns across all phases, constructive criticism with examples.

## 7. ACTIONABLE RECOMMENDATIONS (45 seconds)
3-5 concrete practice points, prioritized by impact, referencing specific examples from the game.

IMPORTANT GUIDELINES:
- Write for SPOKEN delivery - natural, conversational, engaging
- Use "you" and "your" - speak directly to the player
- Flow naturally between sections - don't announce section numbers
- Be constructive and balanced - coaching, not criticism
- Total length: ~5-6 minutes when spoken
- Sound like you're watching the VOD together

START YOUR COACHING REVIEW NOW:`

const globalAnalysisPrompt = `You are an expert League of Legends coach analyzing multiple games to identify patterns.

You will receive coaching reviews for multiple games. Analyze them and provide:

**What you're good at:** (4 bullet points)
- Identify 4 specific strengths that appear consistently across games
- Be specific and reference which games show these strengths

**What can be improved:** (4 bullet points)
- Identify 4 specific weaknesses or mistakes that recur across games
- Explain the impact and reference which games show these issues

Write for SPOKEN delivery - natural, conversational, ~1-2 minutes when spoken. Be direct and actionable.

Provide your multi-game analysis:`

var phasePrompts = map[string]string{
	"early": earlyGamePrompt,
	"mid":   midGamePrompt,
	"late":  lateGamePrompt,
}

// roundedJSON serializes a tree with all float leaves rounded, the format
// every prompt embeds artifact data in.
func roundedJSON(tree map[string]any, decimals int) (string, error) {
	b, err := json.MarshalIndent(timelineutil.RoundFloats(tree, decimals), "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize prompt data")
	}
	return string(b), nil
}

func matchLogPrompt(m *model.Match, puuid string, decimals int) (string, error) {
	target, ok := m.ParticipantByPUUID(puuid)
	if !ok {
		return "", rcerr.ErrInvalidReq.Msg("player %s not found in match %s", puuid, m.MatchID())
	}

	side := "Unknown"
	switch target.TeamID {
	case 100:
		side = "Blue Side"
	case 200:
		side = "Red Side"
	}

	data, err := roundedJSON(m.Tree(), decimals)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`%s

TARGET PLAYER INFORMATION:
- Summoner: %s#%s
- Champion: %s
- Side: %s (Team %d)
- PUUID: %s

MATCH LOG DATA:
`+"```json\n%s\n```"+`

Provide your structured analysis now:`,
		matchLogAnalysisPrompt,
		target.RiotIDGameName, target.RiotIDTagline,
		target.ChampionName, side, target.TeamID, puuid, data), nil
}

func phasePrompt(phaseName string, phase *model.PhaseTimeline, matchContext, puuid, champion string, decimals int) (string, error) {
	base, ok := phasePrompts[phaseName]
	if !ok {
		base = earlyGamePrompt
	}

	tree, err := toTree(phase)
	if err != nil {
		return "", err
	}
	data, err := roundedJSON(tree, decimals)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`%s

TARGET PLAYER:
- Champion: %s
- PUUID: %s

MATCH CONTEXT (from statistical analysis):
%s

%s GAME TIMELINE DATA:
`+"```json\n%s\n```"+`

Begin your %s game analysis:`,
		base, champion, puuid, matchContext,
		strings.ToUpper(phaseName), data, phaseName), nil
}

func synthesisPrompt(matchContext string, phaseAnalyses map[string]string, champion string) string {
	analysisOr := func(phase, fallback string) string {
		if analysis, ok := phaseAnalyses[phase]; ok {
			return analysis
		}
		return fallback
	}

	return fmt.Sprintf(`%s

TARGET CHAMPION: %s

MATCH CONTEXT (from statistical analysis):
%s

EARLY GAME ANALYSIS (0-15 minutes):
%s

MID GAME ANALYSIS (15-30 minutes):
%s

LATE GAME ANALYSIS (30+ minutes):
%s

Now synthesize this into a cohesive, engaging coaching review:`,
		finalSynthesisPrompt, champion, matchContext,
		analysisOr("early", "No early game data"),
		analysisOr("mid", "No mid game data"),
		analysisOr("late", "No late game data"))
}

func globalPrompt(reviews, contexts map[string]string) string {
	matchIDs := make([]string, 0, len(reviews))
	for matchID := range reviews {
		matchIDs = append(matchIDs, matchID)
	}
	sort.Strings(matchIDs)

	var sb strings.Builder
	for i, matchID := range matchIDs {
		if context := strings.TrimSpace(contexts[matchID]); context != "" {
			fmt.Fprintf(&sb, "\nGAME %d (%s):\n%s\n\nREVIEW:\n%s\n\n", i+1, matchID, context, reviews[matchID])
		} else {
			fmt.Fprintf(&sb, "\nGAME %d (%s):\n%s\n\n", i+1, matchID, reviews[matchID])
		}
	}

	return fmt.Sprintf(`%s

You have %d game(s) to analyze:

%s

Provide your multi-game analysis:`, globalAnalysisPrompt, len(reviews), sb.String())
}
