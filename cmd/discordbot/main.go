/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/leagueladder/store"

	_ "embed"
)

const (
	TokenEnvVar   = "LADDER_BOT_TOKEN"
	PubKeyEnvVar  = "LADDER_BOT_PUBKEY"
	AppIdEnvVar   = "LADDER_BOT_APPID"
	RefEnvVar     = "LADDER_STORE_REF"
	BackendEnvVar = "LADDER_STORE_BACKEND"
)

var botPubKey ed25519.PublicKey
var botAppId string

const LadderCmdId = "1419702385661754311"

var client *discordgo.Session
var ladderStore store.Store

type TopLevelCommand string

const (
	LadderCmd TopLevelCommand = "ladder"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	LadderCmd: ladderCmdHandler,
}

func interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, botPubKey) {
		log.Printf("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("discordbot.int: failed to read request body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		log.Printf("discordbot.int: failed to unmarshal interaction: err:%v body:%v",
			err, body)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		hdlr, ok :=
			topLevelCmdHdlrs[TopLevelCommand(inter.ApplicationCommandData().Name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'",
					inter.ApplicationCommandData().Name),
				Flags: discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		log.Printf("discordbot.int: unimplemented interaction type %v: inter:%v",
			inter.Type, inter)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		log.Printf("discordbot.int: failed to marshal resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(rawResp)
	if err != nil {
		log.Printf("discordbot.int: failed to write resp: err:%v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func init() {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
}

func initFromEnv(ctx context.Context) error {
	pubKeyBytes, err := hex.DecodeString(os.Getenv(PubKeyEnvVar))
	if err != nil || len(pubKeyBytes) == 0 {
		return fmt.Errorf("discordbot.init: failed to parse %v: %w",
			PubKeyEnvVar, err)
	}
	botPubKey = ed25519.PublicKey(pubKeyBytes)
	botAppId = os.Getenv(AppIdEnvVar)

	client, err = discordgo.New("Bot " + os.Getenv(TokenEnvVar))
	if err != nil {
		return fmt.Errorf("discordbot.init: failed to initialize discord client: %w",
			err)
	}

	backend := os.Getenv(BackendEnvVar)
	if backend == "" {
		backend = "sheets"
	}
	ladderStore, err = store.Open(ctx, backend, os.Getenv(RefEnvVar))
	if err != nil {
		return fmt.Errorf("discordbot.init: failed to open %v store: %w",
			backend, err)
	}

	return nil
}

//go:embed lastupdate.hash
var lastCmdUpdateHash string

func shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		log.Fatalf("discordbot.reg: failed to marshal cmd: %v", err)
		return false
	}
	hasher := sha256.New()
	hasher.Write(cmdJson)
	hash := hasher.Sum(nil)
	hexString := hex.EncodeToString(hash)

	shouldUpdate := (hexString != lastCmdUpdateHash)

	if shouldUpdate {
		log.Printf("discordbot.reg: updating cmd reg; please update lastupdate.hash to %v",
			hexString)
	}

	return shouldUpdate
}

func registerSlashCommands() {
	ladderCmd := &discordgo.ApplicationCommand{
		Name:        string(LadderCmd),
		Description: "League ladder commands; try /ladder help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LadderHelpCmd),
				Description: "Show usage for ladder",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LadderAboutCmd),
				Description: "Show information about leagueladder",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LadderStandingsCmd),
				Description: "Show the current ladder standings",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "broadcast",
						Description: "Share with the rest of the channel instead of only to you (default is false)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LadderLogCmd),
				Description: "Log a completed match",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "winners",
						Description: "Winning roster (semicolon separated)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "losers",
						Description: "Losing roster (semicolon separated)",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "scorew",
						Description: "Winning team's score",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "scorel",
						Description: "Losing team's score",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "date",
						Description: "Match date (default is today)",
						Required:    false,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "forfeit",
						Description: "Forfeit by 'winners' or 'losers' (default is none)",
						Required:    false,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(LadderUndoCmd),
				Description: "Remove the most recently logged match",
			},
		},
	}

	if LadderCmdId == "" {
		cmd, err := client.ApplicationCommandCreate(botAppId, "", ladderCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to register %v: %v",
				ladderCmd.Name, err)
			return
		}

		log.Printf("discordbot.reg: registered %v(cmdID:%v)", cmd.Name, cmd.ID)
	} else if shouldUpdateCmdRegistration(ladderCmd) {
		cmd, err := client.ApplicationCommandEdit(botAppId, "", LadderCmdId,
			ladderCmd)
		if err != nil {
			log.Printf("discordbot.reg: failed to update %v: %v",
				ladderCmd.Name, err)
			return
		}

		log.Printf("discordbot.reg: updated %v(cmdID:%v)", cmd.Name, cmd.ID)
	}
}

func main() {
	ctx := context.Background()
	if err := initFromEnv(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	go registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Printf("discordbot.main: starting server on %v:8080", hostname)

	http.HandleFunc("/DiscordBot/Interaction", interactionHandler)
	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatalf("discordbot.main: Serve failed: %v", err)
	}

	log.Printf("discordbot.main: exiting")
}
