package catalog

import (
	"math/rand"

	"github.com/BeanieMen/Wikichu/internal/domain"
)

// seedStickers is the shipped sticker pool. IDs are stable because inventory
// rows reference them; append new stickers, never renumber existing ones.
var seedStickers = []domain.Sticker{
	{ID: 1, Name: "BITSPROUT", SourceURL: "/stickers/bitsprout.png", Rarity: 1, Description: "A tiny seedling that grows one pixel per day."},
	{ID: 2, Name: "PEBBLIT", SourceURL: "/stickers/pebblit.png", Rarity: 1, Description: "A round little rock that rolls wherever you look."},
	{ID: 3, Name: "SNOOZLE", SourceURL: "/stickers/snoozle.png", Rarity: 1, Description: "Asleep since it hatched. Do not wake."},
	{ID: 4, Name: "WIGGLET", SourceURL: "/stickers/wigglet.png", Rarity: 1, Description: "Wiggles to communicate. Nobody knows what it says."},
	{ID: 5, Name: "MOSSLING", SourceURL: "/stickers/mossling.png", Rarity: 1, Description: "Covered in soft moss. Smells like rain."},
	{ID: 6, Name: "FLAREPUP", SourceURL: "/stickers/flarepup.png", Rarity: 2, Description: "Its tail sparks when it gets excited."},
	{ID: 7, Name: "AQUAFIN", SourceURL: "/stickers/aquafin.png", Rarity: 2, Description: "Swims in circles to tell the time."},
	{ID: 8, Name: "THORNBUD", SourceURL: "/stickers/thornbud.png", Rarity: 2, Description: "Prickly outside, surprisingly friendly inside."},
	{ID: 9, Name: "ZAPPERLING", SourceURL: "/stickers/zapperling.png", Rarity: 2, Description: "Stores static electricity in its fluff."},
	{ID: 10, Name: "GLYPTOBLOCK", SourceURL: "/stickers/glyptoblock.png", Rarity: 3, Description: "An ancient carved block humming with forgotten knowledge."},
	{ID: 11, Name: "EMBERWING", SourceURL: "/stickers/emberwing.png", Rarity: 3, Description: "Leaves a trail of warm sparks when it flies."},
	{ID: 12, Name: "FROSTMAW", SourceURL: "/stickers/frostmaw.png", Rarity: 3, Description: "Its breath freezes morning dew mid-air."},
	{ID: 13, Name: "STARVEIL", SourceURL: "/stickers/starveil.png", Rarity: 4, Description: "Wears a cloak woven from last night's stars."},
	{ID: 14, Name: "OBSIDIANT", SourceURL: "/stickers/obsidiant.png", Rarity: 4, Description: "Forged in a volcano, polishes itself daily."},
	{ID: 15, Name: "AURUMDRAKE", SourceURL: "/stickers/aurumdrake.png", Rarity: 5, Description: "A golden drake said to appear once per collection."},
	{ID: 16, Name: "PRISMALORD", SourceURL: "/stickers/prismalord.png", Rarity: 5, Description: "Refracts light into every color that has a name, and three that don't."},
}

func Default(src rand.Source) *Catalog {
	return New(seedStickers, src)
}
