/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/leagueladder/elo"
	"github.com/mikeb26/leagueladder/internal"
	"github.com/mikeb26/leagueladder/ladder"
	"github.com/mikeb26/leagueladder/store"
)

type LadderSubCommand string

const (
	LadderAboutCmd     LadderSubCommand = "about"
	LadderHelpCmd      LadderSubCommand = "help"
	LadderStandingsCmd LadderSubCommand = "standings"
	LadderLogCmd       LadderSubCommand = "log"
	LadderUndoCmd      LadderSubCommand = "undo"
)

var ladderSubCmdHdlrs = map[LadderSubCommand]CmdHandler{
	LadderAboutCmd:     ladderAboutCmdHandler,
	LadderHelpCmd:      ladderHelpCmdHandler,
	LadderStandingsCmd: ladderStandingsCmdHandler,
	LadderLogCmd:       ladderLogCmdHandler,
	LadderUndoCmd:      ladderUndoCmdHandler,
}

func ladderCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := ladderHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := ladderSubCmdHdlrs[LadderSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

//go:embed about.txt
var aboutText string

func ladderAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	resp.Data.Content = truncateContent(aboutText)

	return resp
}

//go:embed help.md
var helpText string

func ladderHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	resp.Data.Content = truncateContent(helpText)
	return resp
}

func loadHistory(ctx context.Context,
	st store.Store) ([]elo.Match, elo.Ratings, error) {

	var matches []elo.Match
	var baseline elo.Ratings

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		matches, err = st.LoadMatches(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		baseline, err = st.LoadBaseline(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	return matches, baseline, nil
}

func ladderStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	broadcast := false // default
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			if opt.Name == "broadcast" {
				broadcast = opt.BoolValue()
			}
		}
	}

	matches, baseline, err := loadHistory(ctx, ladderStore)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error loading match history: %v", err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}

	engine := elo.NewEngine(elo.DefaultConfig())
	ratings, records, err := engine.Recompute(matches, baseline)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error recomputing standings: %v", err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}
	standings := engine.BuildStandings(ratings, records)

	// Wrap output in code block for monospace formatting in Discord
	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(ladder.BuildStandingsOutput(standings)))

	if broadcast {
		resp.Data.Flags = 0
	}

	return resp
}

func ladderLogCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	data := inter.ApplicationCommandData()
	m := elo.Match{
		Date: time.Now().Format("2006-01-02"),
	}
	if len(data.Options) > 0 {
		for _, opt := range data.Options[0].Options {
			switch opt.Name {
			case "winners":
				m.Winners = internal.SplitPlayerList(opt.StringValue())
			case "losers":
				m.Losers = internal.SplitPlayerList(opt.StringValue())
			case "scorew":
				m.ScoreW = int(opt.IntValue())
			case "scorel":
				m.ScoreL = int(opt.IntValue())
			case "date":
				m.Date = internal.NormalizeMatchDate(opt.StringValue())
			case "forfeit":
				m.Forfeit = elo.ParseForfeit(opt.StringValue())
			}
		}
	}

	if err := m.Validate(); err != nil {
		resp.Data.Content = fmt.Sprintf("Could not log match: %v", err)
		log.Printf("discordbot.log: %v", resp.Data.Content)
		return resp
	}

	if err := ladderStore.AppendMatch(ctx, m); err != nil {
		resp.Data.Content = fmt.Sprintf("Error logging match: %v", err)
		log.Printf("discordbot.log: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = fmt.Sprintf("Logged %v def. %v %v-%v on %v",
		internal.JoinPlayerList(m.Winners), internal.JoinPlayerList(m.Losers),
		m.ScoreW, m.ScoreL, m.Date)

	return resp
}

func ladderUndoCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}

	if err := ladderStore.DeleteLastMatch(ctx); err != nil {
		resp.Data.Content = fmt.Sprintf("Error undoing last match: %v", err)
		log.Printf("discordbot.undo: %v", resp.Data.Content)
		return resp
	}

	resp.Data.Content = "Removed the most recently logged match"

	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
