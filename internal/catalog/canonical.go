package catalog

import (
	"github.com/DavideLaterza81/ItalianTV/internal/channel"
	"github.com/DavideLaterza81/ItalianTV/internal/stream"
)

// The two flagship channels keep the first two display positions regardless
// of any explicit ordering.
const (
	// HomeChannelID is always shown first and is the default featured channel.
	HomeChannelID = "stiletv"
	// SecondChannelID is always shown second.
	SecondChannelID = "settv"
)

// canonicalDef is the build-time template for a system channel.
type canonicalDef struct {
	id               string
	name             string
	description      string
	category         channel.Category
	logoURL          string
	websiteURL       string
	streamURL        string
	newsFeedURL      string
	youtubeChannelID string
	order            int
}

var canonicalDefs = []canonicalDef{
	{
		id:          "stiletv",
		name:        "StileTV",
		description: "Il canale della Campania: attualità, cultura e spettacolo in diretta 24 ore su 24.",
		category:    channel.CategoryLocal,
		logoURL:     "https://www.stiletv.it/images/logo.png",
		websiteURL:  "https://www.stiletv.it",
		streamURL:   "https://live.stiletv.it/hls/stiletv/index.m3u8",
		newsFeedURL: "https://www.stiletv.it/feed/",
		order:       1,
	},
	{
		id:          "settv",
		name:        "SET",
		description: "Sud Est Televisione: informazione e intrattenimento dal territorio.",
		category:    channel.CategoryLocal,
		logoURL:     "https://www.settv.it/images/logo.png",
		websiteURL:  "https://www.settv.it",
		streamURL:   "https://stream.settv.it/settv/live/playlist.m3u8",
		order:       2,
	},
	{
		id:          "rainews24",
		name:        "Rai News 24",
		description: "Notizie in tempo reale, approfondimenti e rassegna stampa dal canale all news della Rai.",
		category:    channel.CategoryNews,
		logoURL:     "https://www.rainews.it/assets/images/logo-rainews24.png",
		websiteURL:  "https://www.rainews.it",
		streamURL:   "https://streamcdnb9.rainews.it/hls/rainews24/index.m3u8",
		newsFeedURL: "https://www.rainews.it/rss/tutti",
		order:       3,
	},
	{
		id:          "radionorbatv",
		name:        "Radionorba TV",
		description: "La musica del sud: hit del momento, classifiche e grandi eventi live.",
		category:    channel.CategoryMusic,
		logoURL:     "https://www.radionorba.it/images/rntv-logo.png",
		websiteURL:  "https://www.radionorba.it",
		streamURL:   "https://stream.radionorba.it/rntv/live/index.m3u8",
		order:       4,
	},
	{
		id:          "canale21",
		name:        "Canale 21",
		description: "Storica emittente napoletana: sport, talk e informazione locale.",
		category:    channel.CategoryLocal,
		logoURL:     "https://www.canale21.it/images/logo.png",
		websiteURL:  "https://www.canale21.it",
		streamURL:   "https://www.canale21.it/diretta/",
		order:       5,
	},
	{
		id:               "telepace",
		name:             "Telepace",
		description:      "Celebrazioni, udienze e programmi di ispirazione religiosa.",
		category:         channel.CategoryReligion,
		logoURL:          "https://www.telepace.it/images/logo.png",
		websiteURL:       "https://www.telepace.it",
		streamURL:        "https://www.youtube.com/watch?v=k3BTJ9otAPw",
		youtubeChannelID: "UCxGqkZ1yLDG9zR4P4bDImHg",
		order:            6,
	},
	{
		id:          "teleambiente",
		name:        "TeleAmbiente",
		description: "Documentari e informazione dedicati all'ambiente e alla sostenibilità.",
		category:    channel.CategoryDocumentary,
		logoURL:     "https://www.teleambiente.it/images/logo.png",
		websiteURL:  "https://www.teleambiente.it",
		streamURL:   "https://flash5.teleambiente.it/hls/live.m3u8",
		order:       7,
	},
	{
		id:          "fantasylandtv",
		name:        "Fantasyland TV",
		description: "Cartoni animati e programmi per i più piccoli, tutto il giorno.",
		category:    channel.CategoryKids,
		logoURL:     "https://www.fantasylandtv.it/images/logo.png",
		websiteURL:  "https://www.fantasylandtv.it",
		streamURL:   "https://www.fantasylandtv.it/player/live",
		order:       8,
	},
}

// Canonical returns the build-time system channel set. Every call returns a
// fresh slice: templates are never shared mutable state.
func Canonical() []channel.Record {
	records := make([]channel.Record, 0, len(canonicalDefs))
	for _, def := range canonicalDefs {
		order := def.order
		records = append(records, channel.Reconstruct(
			def.id, def.name, def.description, def.category,
			def.logoURL, def.websiteURL, def.streamURL,
			string(stream.Classify(def.streamURL).Kind),
			def.newsFeedURL, def.youtubeChannelID,
			false, &order, 0, 0,
		))
	}
	return records
}

// CanonicalIDs returns the set of system channel identifiers.
func CanonicalIDs() map[string]bool {
	ids := make(map[string]bool, len(canonicalDefs))
	for _, def := range canonicalDefs {
		ids[def.id] = true
	}
	return ids
}
