/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/leagueladder/elo"
)

type fakeStore struct {
	matches  []elo.Match
	baseline elo.Ratings
}

func (fs *fakeStore) LoadMatches(ctx context.Context) ([]elo.Match, error) {
	return fs.matches, nil
}

func (fs *fakeStore) AppendMatch(ctx context.Context, m elo.Match) error {
	fs.matches = append(fs.matches, m)
	return nil
}

func (fs *fakeStore) DeleteLastMatch(ctx context.Context) error {
	if len(fs.matches) == 0 {
		return errors.New("no matches to delete")
	}
	fs.matches = fs.matches[:len(fs.matches)-1]
	return nil
}

func (fs *fakeStore) LoadBaseline(ctx context.Context) (elo.Ratings, error) {
	return fs.baseline, nil
}

func (fs *fakeStore) Close() error {
	return nil
}

func subCmdInteraction(sub string,
	opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(LadderCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    sub,
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func TestLadderHelpCmdHandler(t *testing.T) {
	ctx := context.Background()

	inter := subCmdInteraction(string(LadderHelpCmd), nil)
	resp := ladderCmdHandler(ctx, inter)
	if resp == nil {
		t.Fatal("Expected non-nil response")
	}
	if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("Expected response type %v, got %v",
			discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	}
	if resp.Data == nil || resp.Data.Content == "" {
		t.Fatal("Expected non-empty response content")
	}
	if !strings.Contains(resp.Data.Content, "/ladder") {
		t.Errorf("Expected help content to mention /ladder, got %q",
			resp.Data.Content)
	}
}

func TestLadderStandingsCmdHandler(t *testing.T) {
	ctx := context.Background()
	ladderStore = &fakeStore{
		matches: []elo.Match{
			{Date: "2024-01-05", Winners: []string{"alice"},
				Losers: []string{"bob"}, ScoreW: 7, ScoreL: 6, Seq: 1},
		},
	}

	inter := subCmdInteraction(string(LadderStandingsCmd), nil)
	resp := ladderCmdHandler(ctx, inter)
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response data")
	}
	if !strings.Contains(resp.Data.Content, "alice") {
		t.Errorf("Expected standings to contain alice, got %q",
			resp.Data.Content)
	}
	if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("Expected ephemeral response by default, got flags %v",
			resp.Data.Flags)
	}
}

func TestLadderStandingsCmdHandlerBroadcast(t *testing.T) {
	ctx := context.Background()
	ladderStore = &fakeStore{}

	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{
			Name:  "broadcast",
			Type:  discordgo.ApplicationCommandOptionBoolean,
			Value: true,
		},
	}
	inter := subCmdInteraction(string(LadderStandingsCmd), opts)
	resp := ladderCmdHandler(ctx, inter)
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response data")
	}
	if resp.Data.Flags != 0 {
		t.Errorf("Expected broadcast response, got flags %v", resp.Data.Flags)
	}
}

func TestLadderLogCmdHandler(t *testing.T) {
	ctx := context.Background()
	fs := &fakeStore{}
	ladderStore = fs

	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{
			Name:  "winners",
			Type:  discordgo.ApplicationCommandOptionString,
			Value: "alice;bob",
		},
		{
			Name:  "losers",
			Type:  discordgo.ApplicationCommandOptionString,
			Value: "carol",
		},
		{
			Name:  "scorew",
			Type:  discordgo.ApplicationCommandOptionInteger,
			Value: 7.0,
		},
		{
			Name:  "scorel",
			Type:  discordgo.ApplicationCommandOptionInteger,
			Value: 6.0,
		},
		{
			Name:  "date",
			Type:  discordgo.ApplicationCommandOptionString,
			Value: "Jan 5 2024",
		},
	}
	inter := subCmdInteraction(string(LadderLogCmd), opts)
	resp := ladderCmdHandler(ctx, inter)
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response data")
	}
	if len(fs.matches) != 1 {
		t.Fatalf("Expected 1 stored match, got %v", len(fs.matches))
	}
	m := fs.matches[0]
	if len(m.Winners) != 2 || m.Winners[0] != "alice" || m.Winners[1] != "bob" {
		t.Errorf("Unexpected winners roster: %v", m.Winners)
	}
	if m.Date != "2024-01-05" {
		t.Errorf("Expected normalized date, got %v", m.Date)
	}
	if !strings.Contains(resp.Data.Content, "Logged") {
		t.Errorf("Expected confirmation message, got %q", resp.Data.Content)
	}
}

func TestLadderLogCmdHandlerRejectsEmptyTeam(t *testing.T) {
	ctx := context.Background()
	fs := &fakeStore{}
	ladderStore = fs

	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{
			Name:  "winners",
			Type:  discordgo.ApplicationCommandOptionString,
			Value: "",
		},
		{
			Name:  "losers",
			Type:  discordgo.ApplicationCommandOptionString,
			Value: "carol",
		},
		{
			Name:  "scorew",
			Type:  discordgo.ApplicationCommandOptionInteger,
			Value: 7.0,
		},
		{
			Name:  "scorel",
			Type:  discordgo.ApplicationCommandOptionInteger,
			Value: 6.0,
		},
	}
	inter := subCmdInteraction(string(LadderLogCmd), opts)
	resp := ladderCmdHandler(ctx, inter)
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response data")
	}
	if len(fs.matches) != 0 {
		t.Fatalf("Expected no stored matches, got %v", len(fs.matches))
	}
	if !strings.Contains(resp.Data.Content, "Could not log match") {
		t.Errorf("Expected validation error message, got %q",
			resp.Data.Content)
	}
}

func TestLadderUndoCmdHandler(t *testing.T) {
	ctx := context.Background()
	fs := &fakeStore{
		matches: []elo.Match{
			{Date: "2024-01-05", Winners: []string{"alice"},
				Losers: []string{"bob"}, ScoreW: 7, ScoreL: 6, Seq: 1},
		},
	}
	ladderStore = fs

	inter := subCmdInteraction(string(LadderUndoCmd), nil)
	resp := ladderCmdHandler(ctx, inter)
	if resp == nil || resp.Data == nil {
		t.Fatal("Expected non-nil response data")
	}
	if len(fs.matches) != 0 {
		t.Fatalf("Expected 0 matches after undo, got %v", len(fs.matches))
	}

	// a second undo on an empty history reports the error
	resp = ladderCmdHandler(ctx, inter)
	if !strings.Contains(resp.Data.Content, "Error undoing") {
		t.Errorf("Expected undo error message, got %q", resp.Data.Content)
	}
}
